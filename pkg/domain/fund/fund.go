package fund

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teranga/cagnotte/pkg/currency"
	"github.com/teranga/cagnotte/pkg/money"
)

var (
	// ErrFundNotFound is returned when a fund cannot be found.
	ErrFundNotFound = errors.New("fund not found")

	// ErrFundNotActive is returned when a contribution or transition is
	// attempted against a fund in a terminal state.
	ErrFundNotActive = errors.New("fund is not active")

	// ErrCurrencyMismatch is returned when a contribution currency differs from
	// the fund currency.
	ErrCurrencyMismatch = errors.New("contribution currency does not match fund currency")

	// ErrContributionAmountMustBePositive is returned when a contribution
	// amount is not positive.
	ErrContributionAmountMustBePositive = errors.New("contribution amount must be positive")

	// ErrTargetReached is returned when an expiry is attempted on a fund that
	// already collected its target. Target-reached always beats deadline-passed.
	ErrTargetReached = errors.New("fund target already reached")

	// ErrDeadlineNotPassed is returned when an expiry is attempted before the
	// fund deadline.
	ErrDeadlineNotPassed = errors.New("fund deadline has not passed")

	// ErrNoDeadline is returned when an expiry is attempted on a fund without a
	// deadline.
	ErrNoDeadline = errors.New("fund has no deadline")
)

// Status is the lifecycle state of a fund.
type Status string

const (
	// StatusActive is the initial state; the only state contributions are
	// accepted in and the only state transitions occur from.
	StatusActive Status = "active"
	// StatusCompleted is terminal: the fund reached its target.
	StatusCompleted Status = "completed"
	// StatusExpired is terminal: the deadline passed under target and refund
	// obligations were issued.
	StatusExpired Status = "expired"
)

// IsTerminal reports whether no further transition exists out of the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusExpired
}

// Fund is a collective gift campaign, the aggregate root of the contribution
// ledger.
//
// Invariants:
//   - Raised always equals the sum of the fund's recorded contributions.
//   - Status is monotonic: active is the only state transitions occur from;
//     completed and expired are terminal.
//   - Raised and Target always share the fund currency.
type Fund struct {
	ID            uuid.UUID
	CreatorID     uuid.UUID
	BeneficiaryID *uuid.UUID
	Title         string
	Target        money.Money
	Raised        money.Money
	Status        Status
	Deadline      *time.Time
	Visible       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Currency returns the fund's ledger currency.
func (f *Fund) Currency() currency.Code {
	return f.Target.Currency()
}

// TargetReached reports whether the raised amount is at or above target.
// Overshoot is allowed and counts as reached.
func (f *Fund) TargetReached() bool {
	reached, err := f.Raised.GreaterThanOrEqual(f.Target)
	return err == nil && reached
}

// DeadlinePassed reports whether the fund deadline lies strictly before asOf.
// Funds without a deadline never pass.
func (f *Fund) DeadlinePassed(asOf time.Time) bool {
	return f.Deadline != nil && asOf.After(*f.Deadline)
}

// ValidateContribution checks all business invariants for recording a
// contribution, without mutating the fund.
func (f *Fund) ValidateContribution(amount money.Money) error {
	if f.Status != StatusActive {
		return ErrFundNotActive
	}
	if !amount.IsSameCurrency(f.Target) {
		return ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return ErrContributionAmountMustBePositive
	}
	return nil
}

// ApplyContribution adds the amount to the raised total after validating it.
// The caller persists the matching ledger entry in the same transaction and
// then checks TargetReached for the completion transition.
func (f *Fund) ApplyContribution(amount money.Money) error {
	if err := f.ValidateContribution(amount); err != nil {
		return err
	}
	raised, err := f.Raised.Add(amount)
	if err != nil {
		return err
	}
	f.Raised = raised
	f.UpdatedAt = time.Now()
	return nil
}

// MarkCompleted performs the active → completed transition. It is the single
// authoritative place for the edge; any call from a non-active state fails.
func (f *Fund) MarkCompleted() error {
	if f.Status != StatusActive {
		return ErrFundNotActive
	}
	f.Status = StatusCompleted
	f.UpdatedAt = time.Now()
	return nil
}

// MarkExpired performs the active → expired transition.
//
// Preconditions: the fund is active, has a deadline strictly before asOf, and
// is under target. A fund at or above target must be completed instead, never
// expired.
func (f *Fund) MarkExpired(asOf time.Time) error {
	if f.Status != StatusActive {
		return ErrFundNotActive
	}
	if f.Deadline == nil {
		return ErrNoDeadline
	}
	if !f.DeadlinePassed(asOf) {
		return ErrDeadlineNotPassed
	}
	if f.TargetReached() {
		return ErrTargetReached
	}
	f.Status = StatusExpired
	f.UpdatedAt = time.Now()
	return nil
}
