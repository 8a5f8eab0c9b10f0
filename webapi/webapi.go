// Package webapi provides the HTTP surface of the collective fund service.
// It is organized into sub-packages per concern:
// - fund: fund creation, reads and contribution intake
// - sweep: manual expiry sweep trigger
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/teranga/cagnotte/pkg/app"
	"github.com/teranga/cagnotte/webapi/common"
	fundweb "github.com/teranga/cagnotte/webapi/fund"
	sweepweb "github.com/teranga/cagnotte/webapi/sweep"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "cagnotte",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(requestid.New())
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	fundweb.Routes(fiberApp, a.FundService, a.LedgerService)
	sweepweb.Routes(fiberApp, a.SweepService)

	return fiberApp
}
