package refund

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teranga/cagnotte/pkg/currency"
	domainfund "github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/money"
	"github.com/teranga/cagnotte/pkg/repository"
)

type refundRepository struct {
	db *gorm.DB
}

// New creates a refund obligation repository bound to the given session.
func New(db *gorm.DB) repository.RefundObligationRepository {
	return &refundRepository{db: db}
}

// Create implements repository.RefundObligationRepository.
func (r *refundRepository) Create(ctx context.Context, o *domainfund.RefundObligation) error {
	m := RefundObligation{
		ID:              o.ID,
		FundID:          o.FundID,
		ContributionID:  o.ContributionID,
		ContributorID:   o.ContributorID,
		Amount:          o.Amount.Amount(),
		Currency:        o.Amount.Currency().String(),
		Status:          string(o.Status),
		Reason:          o.Reason,
		FundTitle:       o.FundTitle,
		ContributorName: o.ContributorName,
		CreatedAt:       o.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListByFund implements repository.RefundObligationRepository.
func (r *refundRepository) ListByFund(ctx context.Context, fundID uuid.UUID) ([]*domainfund.RefundObligation, error) {
	var models []RefundObligation
	err := r.db.WithContext(ctx).
		Where("fund_id = ?", fundID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domainfund.RefundObligation, 0, len(models))
	for i := range models {
		m := &models[i]
		amount, err := money.New(m.Amount, currency.Code(m.Currency))
		if err != nil {
			return nil, err
		}
		out = append(out, &domainfund.RefundObligation{
			ID:              m.ID,
			FundID:          m.FundID,
			ContributionID:  m.ContributionID,
			ContributorID:   m.ContributorID,
			Amount:          amount,
			Status:          domainfund.ObligationStatus(m.Status),
			Reason:          m.Reason,
			FundTitle:       m.FundTitle,
			ContributorName: m.ContributorName,
			CreatedAt:       m.CreatedAt,
		})
	}
	return out, nil
}
