// Package testutils provides in-memory implementations of the persistence
// contracts for service-level tests.
package testutils

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/repository"
)

// ErrDuplicateObligation mimics the unique-constraint violation on
// (fund_id, contribution_id).
var ErrDuplicateObligation = errors.New("duplicate refund obligation for contribution")

// MemoryUoW is an in-memory UnitOfWork. Do serializes all units of work with
// a single mutex, which gives tests the same per-fund serialization the row
// lock provides in production. There is no rollback; failure-injection hooks
// are expected to fire before any write of their unit of work.
type MemoryUoW struct {
	mu            sync.Mutex
	funds         map[uuid.UUID]fund.Fund
	contributions map[uuid.UUID][]fund.Contribution
	obligations   map[uuid.UUID][]fund.RefundObligation

	// ObligationCreateErr, when set, fails obligation creation for the given
	// fund id. Used to exercise per-fund failure isolation in the sweep.
	ObligationCreateErr map[uuid.UUID]error
}

// NewMemoryUoW creates an empty in-memory unit of work.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{
		funds:               make(map[uuid.UUID]fund.Fund),
		contributions:       make(map[uuid.UUID][]fund.Contribution),
		obligations:         make(map[uuid.UUID][]fund.RefundObligation),
		ObligationCreateErr: make(map[uuid.UUID]error),
	}
}

// Do implements repository.UnitOfWork.
func (u *MemoryUoW) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(u)
}

// GetRepository implements repository.UnitOfWork.
func (u *MemoryUoW) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.FundRepository)(nil)).Elem():
		return &memFundRepo{u}, nil
	case reflect.TypeOf((*repository.ContributionRepository)(nil)).Elem():
		return &memContributionRepo{u}, nil
	case reflect.TypeOf((*repository.RefundObligationRepository)(nil)).Elem():
		return &memObligationRepo{u}, nil
	}
	return nil, errors.New("unsupported repository type")
}

// FundRepository implements repository.UnitOfWork.
func (u *MemoryUoW) FundRepository() (repository.FundRepository, error) {
	return &memFundRepo{u}, nil
}

// ContributionRepository implements repository.UnitOfWork.
func (u *MemoryUoW) ContributionRepository() (repository.ContributionRepository, error) {
	return &memContributionRepo{u}, nil
}

// RefundObligationRepository implements repository.UnitOfWork.
func (u *MemoryUoW) RefundObligationRepository() (repository.RefundObligationRepository, error) {
	return &memObligationRepo{u}, nil
}

// SeedFund stores a fund directly, bypassing the repository.
func (u *MemoryUoW) SeedFund(f *fund.Fund) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.funds[f.ID] = *f
}

// Fund returns a copy of the stored fund for assertions.
func (u *MemoryUoW) Fund(id uuid.UUID) (*fund.Fund, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	f, ok := u.funds[id]
	if !ok {
		return nil, false
	}
	out := f
	return &out, true
}

// Contributions returns copies of the fund's stored ledger entries.
func (u *MemoryUoW) Contributions(fundID uuid.UUID) []fund.Contribution {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]fund.Contribution(nil), u.contributions[fundID]...)
}

// Obligations returns copies of the fund's stored refund obligations.
func (u *MemoryUoW) Obligations(fundID uuid.UUID) []fund.RefundObligation {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]fund.RefundObligation(nil), u.obligations[fundID]...)
}

var _ repository.UnitOfWork = (*MemoryUoW)(nil)

type memFundRepo struct{ u *MemoryUoW }

func (r *memFundRepo) Create(_ context.Context, f *fund.Fund) error {
	r.u.funds[f.ID] = *f
	return nil
}

func (r *memFundRepo) Get(_ context.Context, id uuid.UUID) (*fund.Fund, error) {
	f, ok := r.u.funds[id]
	if !ok {
		return nil, fund.ErrFundNotFound
	}
	out := f
	return &out, nil
}

func (r *memFundRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*fund.Fund, error) {
	// Do already holds the store lock for the whole unit of work.
	return r.Get(ctx, id)
}

func (r *memFundRepo) Update(_ context.Context, f *fund.Fund) error {
	stored, ok := r.u.funds[f.ID]
	if !ok {
		return fund.ErrFundNotFound
	}
	stored.Raised = f.Raised
	stored.Status = f.Status
	stored.UpdatedAt = f.UpdatedAt
	r.u.funds[f.ID] = stored
	return nil
}

func (r *memFundRepo) ListExpiryCandidates(_ context.Context, asOf time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, f := range r.u.funds {
		if f.Status == fund.StatusActive && f.Deadline != nil && f.Deadline.Before(asOf) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *memFundRepo) ListVisible(_ context.Context, limit int) ([]*fund.Fund, error) {
	var out []*fund.Fund
	for _, f := range r.u.funds {
		if f.Visible {
			c := f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memContributionRepo struct{ u *MemoryUoW }

func (r *memContributionRepo) Create(_ context.Context, c *fund.Contribution) error {
	r.u.contributions[c.FundID] = append(r.u.contributions[c.FundID], *c)
	return nil
}

func (r *memContributionRepo) ListByFund(_ context.Context, fundID uuid.UUID) ([]*fund.Contribution, error) {
	entries := r.u.contributions[fundID]
	out := make([]*fund.Contribution, 0, len(entries))
	for i := range entries {
		c := entries[i]
		out = append(out, &c)
	}
	return out, nil
}

type memObligationRepo struct{ u *MemoryUoW }

func (r *memObligationRepo) Create(_ context.Context, o *fund.RefundObligation) error {
	if err, ok := r.u.ObligationCreateErr[o.FundID]; ok {
		return err
	}
	for _, existing := range r.u.obligations[o.FundID] {
		if existing.ContributionID == o.ContributionID {
			return ErrDuplicateObligation
		}
	}
	r.u.obligations[o.FundID] = append(r.u.obligations[o.FundID], *o)
	return nil
}

func (r *memObligationRepo) ListByFund(_ context.Context, fundID uuid.UUID) ([]*fund.RefundObligation, error) {
	entries := r.u.obligations[fundID]
	out := make([]*fund.RefundObligation, 0, len(entries))
	for i := range entries {
		o := entries[i]
		out = append(out, &o)
	}
	return out, nil
}
