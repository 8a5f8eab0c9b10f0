// Package initializer builds the infrastructure dependencies the application
// is wired from: logger, database, unit of work, notification fanout and the
// contributor directory.
package initializer

import (
	"log/slog"

	"github.com/teranga/cagnotte/infra"
	"github.com/teranga/cagnotte/infra/directory"
	"github.com/teranga/cagnotte/infra/fanout"
	"github.com/teranga/cagnotte/infra/repository"
	"github.com/teranga/cagnotte/pkg/app"
	"github.com/teranga/cagnotte/pkg/config"
	"github.com/teranga/cagnotte/pkg/notification"
)

// InitializeDependencies builds the app dependencies from configuration.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, err
	}

	var fan notification.Fanout
	if cfg.AMQP.Url != "" {
		fan, err = fanout.NewAMQP(cfg.AMQP, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("AMQP_URL not set, using in-memory notification fanout")
		fan = fanout.NewMemory(logger)
	}

	return &app.Deps{
		Uow:       repository.NewUoW(db),
		Fanout:    fan,
		Directory: directory.NewStatic(),
		Logger:    logger,
	}, nil
}
