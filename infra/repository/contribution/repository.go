package contribution

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teranga/cagnotte/pkg/currency"
	domainfund "github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/money"
	"github.com/teranga/cagnotte/pkg/repository"
)

type contributionRepository struct {
	db *gorm.DB
}

// New creates a contribution repository bound to the given session.
func New(db *gorm.DB) repository.ContributionRepository {
	return &contributionRepository{db: db}
}

// Create implements repository.ContributionRepository.
func (r *contributionRepository) Create(ctx context.Context, c *domainfund.Contribution) error {
	m := Contribution{
		ID:            c.ID,
		FundID:        c.FundID,
		ContributorID: c.ContributorID,
		Amount:        c.Amount.Amount(),
		Currency:      c.Amount.Currency().String(),
		CreatedAt:     c.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListByFund implements repository.ContributionRepository. Entries come back
// in insertion order.
func (r *contributionRepository) ListByFund(ctx context.Context, fundID uuid.UUID) ([]*domainfund.Contribution, error) {
	var models []Contribution
	err := r.db.WithContext(ctx).
		Where("fund_id = ?", fundID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domainfund.Contribution, 0, len(models))
	for i := range models {
		m := &models[i]
		amount, err := money.New(m.Amount, currency.Code(m.Currency))
		if err != nil {
			return nil, err
		}
		out = append(out, domainfund.NewContributionFromData(
			m.ID, m.FundID, m.ContributorID, amount, m.CreatedAt,
		))
	}
	return out, nil
}
