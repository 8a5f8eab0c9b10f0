package fund

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

func fundColumns() []string {
	return []string{
		"id", "creator_id", "beneficiary_id", "title",
		"target_amount", "raised_amount", "currency", "status",
		"deadline", "visible", "created_at", "updated_at",
	}
}

func TestFundRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := fundRepository{db: db}
	id := uuid.New()
	creator := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "funds" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows(fundColumns()).
			AddRow(id, creator, nil, "Birthday pot", int64(10000), int64(3000), "XOF", "active", nil, true, now, now))

	f, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, f.ID)
	assert.Equal(t, creator, f.CreatorID)
	assert.Equal(t, "Birthday pot", f.Title)
	assert.Equal(t, int64(10000), f.Target.Amount())
	assert.Equal(t, int64(3000), f.Raised.Amount())
	assert.Equal(t, domainfund.StatusActive, f.Status)
	assert.Nil(t, f.Deadline)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := fundRepository{db: db}
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "funds" WHERE id = (.+)`).
		WillReturnRows(sqlmock.NewRows(fundColumns()))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, domainfund.ErrFundNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := fundRepository{db: db}
	id := uuid.New()
	deadline := time.Now().Add(-24 * time.Hour)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "funds" WHERE id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(fundColumns()).
			AddRow(id, uuid.New(), nil, "Farewell pot", int64(10000), int64(3000), "XOF", "active", deadline, true, now, now))

	f, err := repo.GetForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, f.ID)
	require.NotNil(t, f.Deadline)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := fundRepository{db: db}

	f, err := domainfund.New().
		WithCreatorID(uuid.New()).
		WithTitle("Birthday pot").
		WithTarget(10000).
		WithRaised(10000).
		WithStatus(domainfund.StatusCompleted).
		Build()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "funds" SET (.+) WHERE id = (.+)`).
		WithArgs(int64(10000), "completed", sqlmock.AnyArg(), f.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), f))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFundRepository_ListExpiryCandidates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := fundRepository{db: db}
	first, second := uuid.New(), uuid.New()
	asOf := time.Now()

	mock.ExpectQuery(`SELECT "id" FROM "funds" WHERE status = (.+) AND deadline IS NOT NULL AND deadline < (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(first).AddRow(second))

	ids, err := repo.ListExpiryCandidates(context.Background(), asOf, 100)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
