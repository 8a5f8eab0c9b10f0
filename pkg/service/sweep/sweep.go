// Package sweep implements the periodic batch pass that resolves funds whose
// deadline has passed.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/notification"
	"github.com/teranga/cagnotte/pkg/repository"
	"github.com/teranga/cagnotte/pkg/service/refund"
)

// Result summarizes one sweep run. Errors lists the funds whose transition
// failed; those funds remain active and are retried on the next run.
type Result struct {
	Scanned   int         `json:"scanned"`
	Expired   int         `json:"expired"`
	Completed int         `json:"completed"`
	Skipped   int         `json:"skipped"`
	Errors    []uuid.UUID `json:"errors"`
}

// Service drives expired funds through the active → expired transition.
type Service struct {
	uow            repository.UnitOfWork
	issuer         *refund.Issuer
	fanout         notification.Fanout
	perFundTimeout time.Duration
	batchLimit     int
	logger         *slog.Logger
}

// New creates a sweep service. perFundTimeout bounds each fund's unit of work
// so one slow refund issuance cannot stall the whole batch; batchLimit caps
// the candidates examined per run.
func New(
	uow repository.UnitOfWork,
	issuer *refund.Issuer,
	fanout notification.Fanout,
	perFundTimeout time.Duration,
	batchLimit int,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:            uow,
		issuer:         issuer,
		fanout:         fanout,
		perFundTimeout: perFundTimeout,
		batchLimit:     batchLimit,
		logger:         logger.With("service", "sweep"),
	}
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCompleted
	outcomeExpired
)

// Run scans for active funds whose deadline lies strictly before asOf and
// resolves each one in its own unit of work. A failure on one fund is
// recorded and does not abort the rest of the batch; the failed fund stays
// active and the next scheduled run retries it.
//
// Overlapping invocations are tolerated: every candidate is re-checked under
// a row lock before any transition, and refund issuance is idempotent.
//
// The returned error is non-nil only when the candidate scan itself fails.
func (s *Service) Run(ctx context.Context, asOf time.Time) (Result, error) {
	var candidates []uuid.UUID
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		candidates, err = funds.ListExpiryCandidates(ctx, asOf, s.batchLimit)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{Scanned: len(candidates)}
	for _, id := range candidates {
		out, err := s.processFund(ctx, id, asOf)
		if err != nil {
			s.logger.Error("fund expiry failed, will retry next sweep",
				"fund_id", id, "error", err)
			res.Errors = append(res.Errors, id)
			continue
		}
		switch out {
		case outcomeExpired:
			res.Expired++
		case outcomeCompleted:
			res.Completed++
		default:
			res.Skipped++
		}
	}

	s.logger.Info("sweep finished",
		"as_of", asOf,
		"scanned", res.Scanned,
		"expired", res.Expired,
		"completed", res.Completed,
		"skipped", res.Skipped,
		"errors", len(res.Errors),
	)
	return res, nil
}

// processFund resolves a single candidate in one transaction, under a per-fund
// timeout.
//
// The candidate list may be stale, so everything is re-checked under the fund
// row lock: a fund that reached target in the meantime is completed, never
// expired, and a fund another run already resolved is skipped. For a confirmed
// expiry, the order within the transaction is: book obligations, publish
// intents, flip the status last. A failure at any step rolls the transaction
// back, leaving the fund active for the next run; re-published intents on
// retry are covered by the at-least-once contract.
func (s *Service) processFund(ctx context.Context, id uuid.UUID, asOf time.Time) (outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.perFundTimeout)
	defer cancel()

	var (
		out       = outcomeSkipped
		completed []notification.Intent
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		funds, err := uow.FundRepository()
		if err != nil {
			return err
		}
		f, err := funds.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f.Status != fund.StatusActive {
			// Resolved by an overlapping run or a completing contribution.
			return nil
		}
		if !f.DeadlinePassed(asOf) {
			return nil
		}
		if f.TargetReached() {
			// Target-reached beats deadline-passed.
			if err := f.MarkCompleted(); err != nil {
				return err
			}
			if err := funds.Update(ctx, f); err != nil {
				return err
			}
			completed = completionIntents(f)
			out = outcomeCompleted
			return nil
		}

		obligations, err := s.issuer.Issue(ctx, uow, f)
		if err != nil {
			return err
		}
		if err := s.fanout.Publish(ctx, expiryIntents(f, obligations)...); err != nil {
			return err
		}
		if err := f.MarkExpired(asOf); err != nil {
			return err
		}
		if err := funds.Update(ctx, f); err != nil {
			return err
		}
		out = outcomeExpired
		return nil
	})
	if err != nil {
		return outcomeSkipped, err
	}

	if len(completed) > 0 {
		// The completion transition is committed; a publish failure here is
		// logged, matching the ledger's completion path.
		if err := s.fanout.Publish(ctx, completed...); err != nil {
			s.logger.Error("failed to publish fund_completed intents",
				"fund_id", id, "error", err)
		}
	}
	return out, nil
}

// expiryIntents builds one contributor_refund intent per obligation and
// exactly one creator_summary intent for the fund.
func expiryIntents(f *fund.Fund, obligations []*fund.RefundObligation) []notification.Intent {
	intents := make([]notification.Intent, 0, len(obligations)+1)
	contributors := make(map[uuid.UUID]struct{}, len(obligations))
	for _, o := range obligations {
		amount := o.Amount
		intents = append(intents, notification.Intent{
			RecipientID: o.ContributorID,
			Type:        notification.IntentContributorRefund,
			FundID:      f.ID,
			Amount:      &amount,
		})
		contributors[o.ContributorID] = struct{}{}
	}
	intents = append(intents, notification.Intent{
		RecipientID: f.CreatorID,
		Type:        notification.IntentCreatorSummary,
		FundID:      f.ID,
		Summary: &notification.Summary{
			Target:       f.Target.Amount(),
			Collected:    f.Raised.Amount(),
			Contributors: len(contributors),
		},
	})
	return intents
}

func completionIntents(f *fund.Fund) []notification.Intent {
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
	return intents
}
