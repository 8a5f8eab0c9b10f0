// Package notification defines the payload contract handed to the external
// delivery pipeline.
//
// Intents are transient values; this subsystem produces them and hands them
// off, it never persists them or tracks delivery acknowledgment. The hand-off
// is at-least-once: receivers must treat a duplicate of the same intent as a
// no-op.
package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/money"
)

// IntentType identifies what the recipient must be told.
type IntentType string

const (
	// IntentContributorRefund tells a contributor their money will be refunded.
	// Exactly one is produced per refund obligation.
	IntentContributorRefund IntentType = "contributor_refund"
	// IntentCreatorSummary tells a fund creator their fund expired, with the
	// final counts. Exactly one is produced per expired fund.
	IntentCreatorSummary IntentType = "creator_summary"
	// IntentFundCompleted tells the creator and beneficiary the fund reached
	// its target.
	IntentFundCompleted IntentType = "fund_completed"
)

// Summary carries the final counts for a creator_summary intent.
type Summary struct {
	Target       int64 `json:"target"`
	Collected    int64 `json:"collected"`
	Contributors int   `json:"contributors"`
}

// Intent describes who must be told what. Amount is set on contributor_refund
// intents; Summary on creator_summary intents.
type Intent struct {
	RecipientID uuid.UUID    `json:"recipient_id"`
	Type        IntentType   `json:"type"`
	FundID      uuid.UUID    `json:"fund_id"`
	Amount      *money.Money `json:"amount,omitempty"`
	Summary     *Summary     `json:"summary,omitempty"`
}

// Fanout hands intents to the external delivery mechanism. Channel selection,
// templating and transport retries are the receiver's concern.
type Fanout interface {
	Publish(ctx context.Context, intents ...Intent) error
}
