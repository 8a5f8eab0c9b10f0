// Package fund exposes fund creation and read operations for the web layer.
// Lifecycle transitions never happen here: contributions drive completion via
// the ledger service and the sweep drives expiry.
package fund

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/currency"
	domainfund "github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/repository"
)

// Service provides fund creation and queries.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a fund service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "fund")}
}

// CreateParams carries the caller-supplied attributes of a new fund.
// TargetAmount is in the smallest currency unit.
type CreateParams struct {
	CreatorID     uuid.UUID
	BeneficiaryID *uuid.UUID
	Title         string
	TargetAmount  int64
	Currency      currency.Code
	Deadline      *time.Time
	Visible       bool
}

// Create initiates a collective fund in the active state.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domainfund.Fund, error) {
	b := domainfund.New().
		WithCreatorID(p.CreatorID).
		WithTitle(p.Title).
		WithTarget(p.TargetAmount).
		WithVisibility(p.Visible)
	if p.Currency != "" {
		b = b.WithCurrency(p.Currency)
	}
	if p.BeneficiaryID != nil {
		b = b.WithBeneficiaryID(*p.BeneficiaryID)
	}
	if p.Deadline != nil {
		b = b.WithDeadline(*p.Deadline)
	}
	f, err := b.Build()
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		return funds.Create(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("fund created",
		"fund_id", f.ID,
		"creator_id", f.CreatorID,
		"target", f.Target.String(),
	)
	return f, nil
}

// Get returns a fund by id, or domainfund.ErrFundNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domainfund.Fund, error) {
	var f *domainfund.Fund
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		f, err = funds.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListContributions returns the fund's ledger entries.
func (s *Service) ListContributions(ctx context.Context, fundID uuid.UUID) ([]*domainfund.Contribution, error) {
	var out []*domainfund.Contribution
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		if _, err := funds.Get(ctx, fundID); err != nil {
			return err
		}
		contributions, err := uow.ContributionRepository()
		if err != nil {
			return err
		}
		out, err = contributions.ListByFund(ctx, fundID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListVisible returns publicly listed funds, newest first.
func (s *Service) ListVisible(ctx context.Context, limit int) ([]*domainfund.Fund, error) {
	var out []*domainfund.Fund
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		out, err = funds.ListVisible(ctx, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
