package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Why is GetRepository part of UnitOfWork?
// - Ensures all repositories use the same DB session/transaction, which is
//   what makes the contribution insert and the raised-amount update a single
//   all-or-nothing unit.
// - Keeps service code focused on business logic.
// - Prevents accidental use of the wrong DB session (which would break
//   transactionality).
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary. The
	// provided function receives a UnitOfWork bound to that transaction. If
	// the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction/session.
	// Example:
	//   repoAny, err := uow.GetRepository(reflect.TypeOf((*FundRepository)(nil)).Elem())
	//   repo := repoAny.(FundRepository)
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe repository access methods (convenience methods)
	FundRepository() (FundRepository, error)
	ContributionRepository() (ContributionRepository, error)
	RefundObligationRepository() (RefundObligationRepository, error)
}
