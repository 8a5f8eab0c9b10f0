// Package directory provides contributor display-name lookups for refund
// snapshots. Profile storage belongs to an external service; Static is the
// in-process stand-in used in development and tests.
package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownUser is returned when no display name is registered for the user.
var ErrUnknownUser = errors.New("unknown user")

// Static is a map-backed directory.
type Static struct {
	mu    sync.RWMutex
	names map[uuid.UUID]string
}

// NewStatic creates an empty static directory.
func NewStatic() *Static {
	return &Static{names: make(map[uuid.UUID]string)}
}

// Register records a display name for the user.
func (s *Static) Register(userID uuid.UUID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[userID] = name
}

// DisplayName implements refund.Directory.
func (s *Static) DisplayName(_ context.Context, userID uuid.UUID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.names[userID]
	if !ok {
		return "", ErrUnknownUser
	}
	return name, nil
}
