package refund

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainfund "github.com/teranga/cagnotte/pkg/domain/fund"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRefundRepository_ListByFund(t *testing.T) {
	db, mock := newMockDB(t)
	repo := refundRepository{db: db}
	fundID := uuid.New()
	contributionID := uuid.New()
	contributorID := uuid.New()
	now := time.Now()

	columns := []string{
		"id", "fund_id", "contribution_id", "contributor_id",
		"amount", "currency", "status", "reason",
		"fund_title", "contributor_name", "created_at", "updated_at",
	}
	mock.ExpectQuery(`SELECT (.+) FROM "refund_obligations" WHERE fund_id = (.+)`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New(), fundID, contributionID, contributorID,
				int64(2000), "XOF", "pending", "fund_expired",
				"Birthday pot", "Amadou Diop", now, now))

	obligations, err := repo.ListByFund(context.Background(), fundID)
	require.NoError(t, err)
	require.Len(t, obligations, 1)
	o := obligations[0]
	assert.Equal(t, fundID, o.FundID)
	assert.Equal(t, contributionID, o.ContributionID)
	assert.Equal(t, contributorID, o.ContributorID)
	assert.Equal(t, int64(2000), o.Amount.Amount())
	assert.Equal(t, domainfund.ObligationPending, o.Status)
	assert.Equal(t, domainfund.ReasonFundExpired, o.Reason)
	assert.Equal(t, "Amadou Diop", o.ContributorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepository_ListByFund_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := refundRepository{db: db}

	mock.ExpectQuery(`SELECT (.+) FROM "refund_obligations" WHERE fund_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	obligations, err := repo.ListByFund(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, obligations)
	assert.NoError(t, mock.ExpectationsWereMet())
}
