package infra

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	contributionrepo "github.com/teranga/cagnotte/infra/repository/contribution"
	fundrepo "github.com/teranga/cagnotte/infra/repository/fund"
	refundrepo "github.com/teranga/cagnotte/infra/repository/refund"
	"github.com/teranga/cagnotte/pkg/config"
)

// NewDBConnection opens the postgres connection with pool settings tuned for
// the request path plus the sweep batch.
func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	databaseUrl := cnf.Url
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(postgres.Open(databaseUrl), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// Migrate creates or updates the ledger tables, including the unique index on
// (fund_id, contribution_id) that backs refund idempotency.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&fundrepo.Fund{},
		&contributionrepo.Contribution{},
		&refundrepo.RefundObligation{},
	)
}
