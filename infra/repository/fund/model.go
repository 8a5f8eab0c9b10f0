package fund

import (
	"time"

	"github.com/google/uuid"
)

// Fund represents a fund record in the database. Terminal funds are retained
// as historical record, so there is no soft-delete column.
type Fund struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	CreatorID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	BeneficiaryID *uuid.UUID `gorm:"type:uuid"`
	Title         string     `gorm:"type:varchar(255);not null"`
	TargetAmount  int64      `gorm:"not null"`
	RaisedAmount  int64      `gorm:"not null"`
	Currency      string     `gorm:"type:varchar(3);not null"`
	Status        string     `gorm:"type:varchar(16);not null;index:idx_funds_status_deadline"`
	Deadline      *time.Time `gorm:"index:idx_funds_status_deadline"`
	Visible       bool       `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the Fund model.
func (Fund) TableName() string {
	return "funds"
}
