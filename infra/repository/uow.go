package repository

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	contributionrepo "github.com/teranga/cagnotte/infra/repository/contribution"
	fundrepo "github.com/teranga/cagnotte/infra/repository/fund"
	refundrepo "github.com/teranga/cagnotte/infra/repository/refund"
	"github.com/teranga/cagnotte/pkg/repository"
)

// UoW provides transaction boundary and repository access in one abstraction.
//
// All repositories handed out inside Do are bound to the same transaction,
// which is what makes the contribution append and the raised-amount update a
// single all-or-nothing unit, and what gives GetForUpdate's row lock its
// transaction-long lifetime.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.FundRepository)(nil)).Elem():             func(db *gorm.DB) any { return fundrepo.New(db) },
			reflect.TypeOf((*repository.ContributionRepository)(nil)).Elem():     func(db *gorm.DB) any { return contributionrepo.New(db) },
			reflect.TypeOf((*repository.RefundObligationRepository)(nil)).Elem(): func(db *gorm.DB) any { return refundrepo.New(db) },
		},
	}
}

// Do runs the given function in a transaction boundary, providing a UoW with
// repository access bound to that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository provides generic, type-safe access to repositories using the
// transaction session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

// FundRepository implements repository.UnitOfWork.
func (u *UoW) FundRepository() (repository.FundRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.FundRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.FundRepository), nil
}

// ContributionRepository implements repository.UnitOfWork.
func (u *UoW) ContributionRepository() (repository.ContributionRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.ContributionRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.ContributionRepository), nil
}

// RefundObligationRepository implements repository.UnitOfWork.
func (u *UoW) RefundObligationRepository() (repository.RefundObligationRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.RefundObligationRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.RefundObligationRepository), nil
}

// session returns the transaction when inside Do, the root session otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

var _ repository.UnitOfWork = (*UoW)(nil)
