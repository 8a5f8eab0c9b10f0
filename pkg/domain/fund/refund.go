package fund

import (
	"time"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/money"
)

// ObligationStatus is the settlement state of a refund obligation. Settlement
// itself happens on an external payment rail; this system only books the
// obligation.
type ObligationStatus string

const (
	// ObligationPending means the refund is owed and not yet settled.
	ObligationPending ObligationStatus = "pending"
	// ObligationSettled is set by the external settlement process.
	ObligationSettled ObligationStatus = "settled"
)

// ReasonFundExpired is the only obligation reason this subsystem produces.
const ReasonFundExpired = "fund_expired"

// RefundObligation records money owed back to a contributor after a fund
// failed to reach its target by deadline. Exactly one obligation exists per
// contribution of an expired fund.
//
// FundTitle and ContributorName are denormalized snapshots taken at creation
// time, so the obligation stays readable even if the fund or profile is later
// altered.
type RefundObligation struct {
	ID              uuid.UUID
	FundID          uuid.UUID
	ContributionID  uuid.UUID
	ContributorID   uuid.UUID
	Amount          money.Money
	Status          ObligationStatus
	Reason          string
	FundTitle       string
	ContributorName string
	CreatedAt       time.Time
}

// NewRefundObligation books a pending refund for the given contribution of an
// expiring fund, snapshotting the fund title and contributor display name.
func NewRefundObligation(f *Fund, c *Contribution, contributorName string) *RefundObligation {
	return &RefundObligation{
		ID:              uuid.New(),
		FundID:          f.ID,
		ContributionID:  c.ID,
		ContributorID:   c.ContributorID,
		Amount:          c.Amount,
		Status:          ObligationPending,
		Reason:          ReasonFundExpired,
		FundTitle:       f.Title,
		ContributorName: contributorName,
		CreatedAt:       time.Now(),
	}
}
