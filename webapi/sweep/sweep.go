// Package sweep exposes the manual trigger for the expiry sweep. The same
// operation normally runs on the cron schedule; this endpoint exists for
// operations and backfills.
package sweep

import (
	"time"

	"github.com/gofiber/fiber/v2"

	sweepsvc "github.com/teranga/cagnotte/pkg/service/sweep"
	"github.com/teranga/cagnotte/webapi/common"
)

// RunSweepRequest optionally pins the sweep's reference time. Defaults to now.
type RunSweepRequest struct {
	AsOf *time.Time `json:"as_of,omitempty"`
}

// Routes registers the sweep trigger route.
func Routes(app *fiber.App, svc *sweepsvc.Service) {
	app.Post("/sweep/run", Run(svc))
}

// Run returns a handler that runs one expiry sweep and reports the summary.
// @Summary Run the expiry sweep
// @Description Scans active funds whose deadline has passed and resolves each one. Safe to invoke repeatedly or concurrently.
// @Tags sweep
// @Accept json
// @Produce json
// @Param request body RunSweepRequest false "Sweep options"
// @Success 200 {object} common.Response "Sweep summary"
// @Failure 500 {object} common.ProblemDetails "Scan failed"
// @Router /sweep/run [post]
func Run(svc *sweepsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		asOf := time.Now()
		if len(c.Body()) > 0 {
			var input RunSweepRequest
			if err := c.BodyParser(&input); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid request body", err)
			}
			if input.AsOf != nil {
				asOf = *input.AsOf
			}
		}
		res, err := svc.Run(c.Context(), asOf)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Sweep failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Sweep finished", res)
	}
}
