// Package ledger implements the contribution ledger: the append-only record
// of contributions and the cached raised total derived from it.
package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/money"
	"github.com/teranga/cagnotte/pkg/notification"
	"github.com/teranga/cagnotte/pkg/repository"
)

// Service records contributions against funds.
type Service struct {
	uow    repository.UnitOfWork
	fanout notification.Fanout
	logger *slog.Logger
}

// New creates a contribution ledger service.
func New(uow repository.UnitOfWork, fanout notification.Fanout, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		fanout: fanout,
		logger: logger.With("service", "ledger"),
	}
}

// Record appends a contribution to the fund's ledger and updates the cached
// raised total in the same transaction; a failure in either leaves neither
// applied.
//
// The fund row is locked for the duration of the transaction, so two
// concurrent contributions (or a contribution racing the expiry sweep) can
// never both act on a stale view of the raised amount or status.
//
// When the contribution takes the fund to or past its target, the fund
// transitions to completed in the same transaction and a fund_completed
// intent is handed to the fanout after commit.
//
// Fails with fund.ErrFundNotActive when the fund is completed or expired,
// and fund.ErrCurrencyMismatch when the amount currency differs from the
// fund currency. Neither failure mutates the ledger.
func (s *Service) Record(
	ctx context.Context,
	fundID, contributorID uuid.UUID,
	amount money.Money,
) (*fund.Contribution, error) {
	var (
		recorded  *fund.Contribution
		completed *fund.Fund
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		f, err := funds.GetForUpdate(ctx, fundID)
		if err != nil {
			return err
		}
		if err := f.ValidateContribution(amount); err != nil {
			return err
		}

		c := fund.NewContribution(fundID, contributorID, amount)
		contributions, err := uow.ContributionRepository()
		if err != nil {
			return err
		}
		if err := contributions.Create(ctx, c); err != nil {
			return err
		}
		if err := f.ApplyContribution(amount); err != nil {
			return err
		}
		if f.TargetReached() {
			if err := f.MarkCompleted(); err != nil {
				return err
			}
			completed = f
		}
		if err := funds.Update(ctx, f); err != nil {
			return err
		}
		recorded = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contribution recorded",
		"fund_id", fundID,
		"contributor_id", contributorID,
		"amount", amount.String(),
	)

	if completed != nil {
		s.notifyCompleted(ctx, completed)
	}
	return recorded, nil
}

// notifyCompleted hands the one-time fund_completed intents to the fanout.
// Publish failures are logged, not propagated: the transition is already
// committed and delivery is at-least-once on the receiving side.
func (s *Service) notifyCompleted(ctx context.Context, f *fund.Fund) {
	intents := []notification.Intent{{
		RecipientID: f.CreatorID,
		Type:        notification.IntentFundCompleted,
		FundID:      f.ID,
	}}
	if f.BeneficiaryID != nil {
		intents = append(intents, notification.Intent{
			RecipientID: *f.BeneficiaryID,
			Type:        notification.IntentFundCompleted,
			FundID:      f.ID,
		})
	}
	if err := s.fanout.Publish(ctx, intents...); err != nil {
		s.logger.Error("failed to publish fund_completed intents",
			"fund_id", f.ID, "error", err)
	}
	s.logger.Info("fund completed", "fund_id", f.ID, "raised", f.Raised.String())
}
