package fund

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teranga/cagnotte/pkg/currency"
	domainfund "github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/repository"
)

type fundRepository struct {
	db *gorm.DB
}

// New creates a fund repository bound to the given session.
func New(db *gorm.DB) repository.FundRepository {
	return &fundRepository{db: db}
}

// Create implements repository.FundRepository.
func (r *fundRepository) Create(ctx context.Context, f *domainfund.Fund) error {
	m := mapDomainToModel(f)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Get implements repository.FundRepository.
func (r *fundRepository) Get(ctx context.Context, id uuid.UUID) (*domainfund.Fund, error) {
	var m Fund
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainfund.ErrFundNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m)
}

// GetForUpdate implements repository.FundRepository. The SELECT ... FOR UPDATE
// row lock is what serializes amount updates against status transitions.
func (r *fundRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domainfund.Fund, error) {
	var m Fund
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainfund.ErrFundNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m)
}

// Update implements repository.FundRepository. Only the mutable columns are
// written; everything else on a fund is created-once.
func (r *fundRepository) Update(ctx context.Context, f *domainfund.Fund) error {
	return r.db.WithContext(ctx).
		Model(&Fund{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{
			"raised_amount": f.Raised.Amount(),
			"status":        string(f.Status),
			"updated_at":    f.UpdatedAt,
		}).Error
}

// ListExpiryCandidates implements repository.FundRepository.
func (r *fundRepository) ListExpiryCandidates(ctx context.Context, asOf time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := r.db.WithContext(ctx).
		Model(&Fund{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", string(domainfund.StatusActive), asOf).
		Order("deadline")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListVisible implements repository.FundRepository.
func (r *fundRepository) ListVisible(ctx context.Context, limit int) ([]*domainfund.Fund, error) {
	var models []Fund
	q := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domainfund.Fund, 0, len(models))
	for i := range models {
		f, err := mapModelToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// mapDomainToModel maps a fund aggregate to its GORM model.
func mapDomainToModel(f *domainfund.Fund) Fund {
	return Fund{
		ID:            f.ID,
		CreatorID:     f.CreatorID,
		BeneficiaryID: f.BeneficiaryID,
		Title:         f.Title,
		TargetAmount:  f.Target.Amount(),
		RaisedAmount:  f.Raised.Amount(),
		Currency:      f.Target.Currency().String(),
		Status:        string(f.Status),
		Deadline:      f.Deadline,
		Visible:       f.Visible,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// mapModelToDomain hydrates a fund aggregate from its GORM model.
func mapModelToDomain(m *Fund) (*domainfund.Fund, error) {
	b := domainfund.New().
		WithID(m.ID).
		WithCreatorID(m.CreatorID).
		WithTitle(m.Title).
		WithTarget(m.TargetAmount).
		WithRaised(m.RaisedAmount).
		WithCurrency(currency.Code(m.Currency)).
		WithStatus(domainfund.Status(m.Status)).
		WithVisibility(m.Visible).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt)
	if m.BeneficiaryID != nil {
		b = b.WithBeneficiaryID(*m.BeneficiaryID)
	}
	if m.Deadline != nil {
		b = b.WithDeadline(*m.Deadline)
	}
	return b.Build()
}
