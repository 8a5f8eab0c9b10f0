package fund

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/currency"
	"github.com/teranga/cagnotte/pkg/money"
)

// Builder provides a fluent API for constructing Fund instances. Only valid
// funds can leave Build; hydration setters exist for loading persisted funds.
type Builder struct {
	id            uuid.UUID
	creatorID     uuid.UUID
	beneficiaryID *uuid.UUID
	title         string
	target        int64
	raised        int64
	currency      currency.Code
	status        Status
	deadline      *time.Time
	visible       bool
	createdAt     time.Time
	updatedAt     time.Time
}

// New creates a Builder with sensible defaults: a fresh UUID, the default
// currency, active status and public visibility.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		currency:  currency.DefaultCode,
		status:    StatusActive,
		visible:   true,
		createdAt: time.Now(),
	}
}

// WithID sets the ID for the fund being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithCreatorID sets the creator. This is a mandatory field.
func (b *Builder) WithCreatorID(id uuid.UUID) *Builder {
	b.creatorID = id
	return b
}

// WithBeneficiaryID sets the gift recipient, when known.
func (b *Builder) WithBeneficiaryID(id uuid.UUID) *Builder {
	b.beneficiaryID = &id
	return b
}

// WithTitle sets the fund title. This is a mandatory field.
func (b *Builder) WithTitle(title string) *Builder {
	b.title = title
	return b
}

// WithTarget sets the target amount in the smallest currency unit.
func (b *Builder) WithTarget(amount int64) *Builder {
	b.target = amount
	return b
}

// WithCurrency sets the fund currency. Defaults to the marketplace default.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.currency = code
	return b
}

// WithRaised sets the raised amount in the smallest currency unit. This should
// only be used for hydrating a persisted fund or for test setup.
func (b *Builder) WithRaised(amount int64) *Builder {
	b.raised = amount
	return b
}

// WithStatus sets the lifecycle status. This should only be used for hydrating
// a persisted fund; new funds always start active.
func (b *Builder) WithStatus(s Status) *Builder {
	b.status = s
	return b
}

// WithDeadline sets the contribution deadline. Funds without a deadline never
// expire.
func (b *Builder) WithDeadline(t time.Time) *Builder {
	b.deadline = &t
	return b
}

// WithVisibility sets whether the fund is publicly listed.
func (b *Builder) WithVisibility(visible bool) *Builder {
	b.visible = visible
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build finalizes the construction of the Fund, validating all invariants.
func (b *Builder) Build() (*Fund, error) {
	if b.creatorID == uuid.Nil {
		return nil, errors.New("creatorID is required")
	}
	if b.title == "" {
		return nil, errors.New("title is required")
	}
	target, err := money.New(b.target, b.currency)
	if err != nil {
		return nil, err
	}
	if !target.IsPositive() {
		return nil, errors.New("target amount must be positive")
	}
	raised, err := money.New(b.raised, b.currency)
	if err != nil {
		return nil, err
	}
	switch b.status {
	case StatusActive, StatusCompleted, StatusExpired:
	default:
		return nil, errors.New("invalid fund status")
	}
	return &Fund{
		ID:            b.id,
		CreatorID:     b.creatorID,
		BeneficiaryID: b.beneficiaryID,
		Title:         b.title,
		Target:        target,
		Raised:        raised,
		Status:        b.status,
		Deadline:      b.deadline,
		Visible:       b.visible,
		CreatedAt:     b.createdAt,
		UpdatedAt:     b.updatedAt,
	}, nil
}
