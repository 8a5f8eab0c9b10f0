// Package app wires the ledger, fund, and sweep services from their
// dependencies.
package app

import (
	"log/slog"

	"github.com/teranga/cagnotte/pkg/config"
	"github.com/teranga/cagnotte/pkg/notification"
	"github.com/teranga/cagnotte/pkg/repository"
	fundsvc "github.com/teranga/cagnotte/pkg/service/fund"
	"github.com/teranga/cagnotte/pkg/service/ledger"
	"github.com/teranga/cagnotte/pkg/service/refund"
	"github.com/teranga/cagnotte/pkg/service/sweep"
)

// Deps contains the infrastructure dependencies the services are built from.
type Deps struct {
	Uow       repository.UnitOfWork
	Fanout    notification.Fanout
	Directory refund.Directory
	Logger    *slog.Logger
}

// App holds the wired services.
type App struct {
	Deps          *Deps
	Config        *config.App
	FundService   *fundsvc.Service
	LedgerService *ledger.Service
	RefundIssuer  *refund.Issuer
	SweepService  *sweep.Service
}

// New wires the services from the given dependencies and configuration.
func New(deps *Deps, cfg *config.App) *App {
	issuer := refund.NewIssuer(deps.Directory, deps.Logger)
	return &App{
		Deps:          deps,
		Config:        cfg,
		FundService:   fundsvc.New(deps.Uow, deps.Logger),
		LedgerService: ledger.New(deps.Uow, deps.Fanout, deps.Logger),
		RefundIssuer:  issuer,
		SweepService: sweep.New(
			deps.Uow,
			issuer,
			deps.Fanout,
			cfg.Sweep.PerFundTimeout,
			cfg.Sweep.BatchLimit,
			deps.Logger,
		),
	}
}
