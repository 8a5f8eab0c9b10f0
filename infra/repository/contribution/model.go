package contribution

import (
	"time"

	"github.com/google/uuid"
)

// Contribution represents a persisted ledger entry. Rows are append-only:
// there is no update path and no delete path.
type Contribution struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	FundID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ContributorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount        int64     `gorm:"not null"`
	Currency      string    `gorm:"type:varchar(3);not null"`
	CreatedAt     time.Time
}

// TableName specifies the table name for the Contribution model.
func (Contribution) TableName() string {
	return "contributions"
}
