package fund

import (
	"time"

	"github.com/teranga/cagnotte/pkg/currency"
	domainfund "github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/money"
)

// CreateFundRequest is the payload for creating a collective fund. Amounts
// are in the smallest currency unit. The creator id comes from the trusted
// caller; authentication happens upstream of this service.
type CreateFundRequest struct {
	CreatorID     string     `json:"creator_id" validate:"required,uuid4"`
	BeneficiaryID string     `json:"beneficiary_id,omitempty" validate:"omitempty,uuid4"`
	Title         string     `json:"title" validate:"required,max=255"`
	TargetAmount  int64      `json:"target_amount" validate:"required,gt=0"`
	Currency      string     `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Visible       *bool      `json:"visible,omitempty"`
}

// ContributeRequest is the payload for recording a contribution. The caller
// must have captured the money on the payment rail already; this endpoint
// only books the ledger entry.
type ContributeRequest struct {
	ContributorID string `json:"contributor_id" validate:"required,uuid4"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required,len=3,uppercase"`
}

// FundResponse is the read model returned for a fund.
type FundResponse struct {
	ID            string     `json:"id"`
	CreatorID     string     `json:"creator_id"`
	BeneficiaryID *string    `json:"beneficiary_id,omitempty"`
	Title         string     `json:"title"`
	TargetAmount  int64      `json:"target_amount"`
	RaisedAmount  int64      `json:"raised_amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Visible       bool       `json:"visible"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ContributionResponse is the read model returned for a ledger entry.
type ContributionResponse struct {
	ID            string    `json:"id"`
	FundID        string    `json:"fund_id"`
	ContributorID string    `json:"contributor_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func toFundResponse(f *domainfund.Fund) FundResponse {
	resp := FundResponse{
		ID:           f.ID.String(),
		CreatorID:    f.CreatorID.String(),
		Title:        f.Title,
		TargetAmount: f.Target.Amount(),
		RaisedAmount: f.Raised.Amount(),
		Currency:     f.Target.Currency().String(),
		Status:       string(f.Status),
		Deadline:     f.Deadline,
		Visible:      f.Visible,
		CreatedAt:    f.CreatedAt,
	}
	if f.BeneficiaryID != nil {
		id := f.BeneficiaryID.String()
		resp.BeneficiaryID = &id
	}
	return resp
}

func moneyFromRequest(amount int64, code string) (money.Money, error) {
	return money.New(amount, currency.Code(code))
}

func toContributionResponse(c *domainfund.Contribution) ContributionResponse {
	return ContributionResponse{
		ID:            c.ID.String(),
		FundID:        c.FundID.String(),
		ContributorID: c.ContributorID.String(),
		Amount:        c.Amount.Amount(),
		Currency:      c.Amount.Currency().String(),
		CreatedAt:     c.CreatedAt,
	}
}
