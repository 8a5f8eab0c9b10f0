// Package refund converts the ledger entries of an expiring fund into refund
// obligations, exactly one per contribution.
package refund

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/repository"
)

// Directory resolves contributor display names for obligation snapshots.
// Profile storage is external; implementations live outside this package.
type Directory interface {
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}

// Issuer creates refund obligations for expiring funds.
type Issuer struct {
	directory Directory
	logger    *slog.Logger
}

// NewIssuer creates a refund issuer.
func NewIssuer(directory Directory, logger *slog.Logger) *Issuer {
	return &Issuer{
		directory: directory,
		logger:    logger.With("service", "refund"),
	}
}

// Issue books one pending obligation per contribution of the fund, within the
// caller's transaction. It returns the complete obligation set for the fund,
// pre-existing ones included, so the caller can emit one contributor_refund
// intent per obligation.
//
// Issue is idempotent: obligations that already exist for a contribution are
// never duplicated. The existence check here closes the retried-sweep case;
// the unique index on (fund_id, contribution_id) closes the concurrent one.
func (i *Issuer) Issue(
	ctx context.Context,
	uow repository.UnitOfWork,
	f *fund.Fund,
) ([]*fund.RefundObligation, error) {
	contributions, err := uow.ContributionRepository()
	if err != nil {
		return nil, err
	}
	entries, err := contributions.ListByFund(ctx, f.ID)
	if err != nil {
		return nil, err
	}

	obligations, err := uow.RefundObligationRepository()
	if err != nil {
		return nil, err
	}
	existing, err := obligations.ListByFund(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	booked := make(map[uuid.UUID]*fund.RefundObligation, len(existing))
	for _, o := range existing {
		booked[o.ContributionID] = o
	}

	out := make([]*fund.RefundObligation, 0, len(entries))
	created := 0
	for _, c := range entries {
		if o, ok := booked[c.ID]; ok {
			out = append(out, o)
			continue
		}
		o := fund.NewRefundObligation(f, c, i.displayName(ctx, c.ContributorID))
		if err := obligations.Create(ctx, o); err != nil {
			return nil, err
		}
		out = append(out, o)
		created++
	}

	i.logger.Info("refund obligations issued",
		"fund_id", f.ID,
		"contributions", len(entries),
		"created", created,
		"pre_existing", len(entries)-created,
	)
	return out, nil
}

// displayName snapshots the contributor name, falling back to the opaque id
// when the directory cannot resolve it. The snapshot is cosmetic; the refund
// itself is keyed by contributor id.
func (i *Issuer) displayName(ctx context.Context, userID uuid.UUID) string {
	name, err := i.directory.DisplayName(ctx, userID)
	if err != nil || name == "" {
		i.logger.Warn("contributor name lookup failed, snapshotting id",
			"contributor_id", userID, "error", err)
		return userID.String()
	}
	return name
}
