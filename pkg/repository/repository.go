// Package repository defines the persistence contracts for the contribution
// ledger. Implementations live in infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/domain/fund"
)

// FundRepository persists fund aggregates.
type FundRepository interface {
	Create(ctx context.Context, f *fund.Fund) error

	// Get returns the fund or fund.ErrFundNotFound.
	Get(ctx context.Context, id uuid.UUID) (*fund.Fund, error)

	// GetForUpdate returns the fund holding a row-level lock for the duration
	// of the surrounding transaction. It is only meaningful inside
	// UnitOfWork.Do; the lock serializes the read-modify-write of the raised
	// amount and status against concurrent contributions and sweeps.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*fund.Fund, error)

	// Update persists the fund's raised amount, status and updated timestamp.
	Update(ctx context.Context, f *fund.Fund) error

	// ListExpiryCandidates returns ids of active funds whose deadline lies
	// strictly before asOf. Candidates must be re-checked under lock before
	// any transition; this read may be stale by the time each fund is
	// processed.
	ListExpiryCandidates(ctx context.Context, asOf time.Time, limit int) ([]uuid.UUID, error)

	// ListVisible returns publicly listed funds, newest first.
	ListVisible(ctx context.Context, limit int) ([]*fund.Fund, error)
}

// ContributionRepository persists ledger entries. Entries are append-only:
// there is no update or delete.
type ContributionRepository interface {
	Create(ctx context.Context, c *fund.Contribution) error
	ListByFund(ctx context.Context, fundID uuid.UUID) ([]*fund.Contribution, error)
}

// RefundObligationRepository persists refund obligations. Obligations are
// created once and settled externally; they are never deleted.
type RefundObligationRepository interface {
	Create(ctx context.Context, o *fund.RefundObligation) error
	ListByFund(ctx context.Context, fundID uuid.UUID) ([]*fund.RefundObligation, error)
}
