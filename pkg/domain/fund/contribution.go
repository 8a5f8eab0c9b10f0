package fund

import (
	"time"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/money"
)

// Contribution is a single, immutable pledge recorded against a fund.
// Corrections are modeled as new compensating entries, never as edits.
type Contribution struct {
	ID            uuid.UUID
	FundID        uuid.UUID
	ContributorID uuid.UUID
	Amount        money.Money
	CreatedAt     time.Time
}

// NewContribution creates a ledger entry for the given fund and contributor.
// Amount validation against the fund happens in Fund.ValidateContribution.
func NewContribution(fundID, contributorID uuid.UUID, amount money.Money) *Contribution {
	return &Contribution{
		ID:            uuid.New(),
		FundID:        fundID,
		ContributorID: contributorID,
		Amount:        amount,
		CreatedAt:     time.Now(),
	}
}

// NewContributionFromData hydrates a Contribution from persisted data.
func NewContributionFromData(
	id, fundID, contributorID uuid.UUID,
	amount money.Money,
	createdAt time.Time,
) *Contribution {
	return &Contribution{
		ID:            id,
		FundID:        fundID,
		ContributorID: contributorID,
		Amount:        amount,
		CreatedAt:     createdAt,
	}
}
