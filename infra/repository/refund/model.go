package refund

import (
	"time"

	"github.com/google/uuid"
)

// RefundObligation represents a persisted refund obligation.
//
// The unique index on (fund_id, contribution_id) enforces at most one
// obligation per contribution even under concurrent sweep invocations; the
// issuer's existence check handles the retried-sweep case before it reaches
// the constraint.
type RefundObligation struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	FundID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_refund_fund_contribution"`
	ContributionID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_refund_fund_contribution"`
	ContributorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount          int64     `gorm:"not null"`
	Currency        string    `gorm:"type:varchar(3);not null"`
	Status          string    `gorm:"type:varchar(16);not null"`
	Reason          string    `gorm:"type:varchar(32);not null"`
	FundTitle       string    `gorm:"type:varchar(255);not null"`
	ContributorName string    `gorm:"type:varchar(255);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the RefundObligation model.
func (RefundObligation) TableName() string {
	return "refund_obligations"
}
