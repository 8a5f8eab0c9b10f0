// Package fanout provides NotificationFanout implementations: an in-memory
// recorder for development and tests, and an AMQP publisher for production.
package fanout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teranga/cagnotte/pkg/notification"
)

// Memory is a simple in-memory implementation of the Fanout interface. It
// records every published intent, which tests use to assert the payload
// contract.
type Memory struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	published []notification.Intent
}

// NewMemory creates a new in-memory fanout.
func NewMemory(logger *slog.Logger) *Memory {
	return &Memory{
		logger:    logger.With("fanout", "memory"),
		published: make([]notification.Intent, 0),
	}
}

// Publish implements notification.Fanout.
func (m *Memory) Publish(ctx context.Context, intents ...notification.Intent) error {
	m.mu.Lock()
	m.published = append(m.published, intents...)
	m.mu.Unlock()

	for _, intent := range intents {
		m.logger.Info("intent published",
			"type", intent.Type,
			"recipient_id", intent.RecipientID,
			"fund_id", intent.FundID,
		)
	}
	return nil
}

// Published returns a copy of the recorded intents.
func (m *Memory) Published() []notification.Intent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]notification.Intent, len(m.published))
	copy(out, m.published)
	return out
}

// Clear drops the recorded intents. This is useful between test cases.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = m.published[:0]
}

var _ notification.Fanout = (*Memory)(nil)
