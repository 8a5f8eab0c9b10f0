package fund

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/teranga/cagnotte/pkg/currency"
	fundsvc "github.com/teranga/cagnotte/pkg/service/fund"
	"github.com/teranga/cagnotte/pkg/service/ledger"
	"github.com/teranga/cagnotte/webapi/common"
)

// Routes registers HTTP routes for fund operations.
//
// Routes:
//   - POST   /funds                      : Create a new collective fund.
//   - GET    /funds                      : List publicly visible funds.
//   - GET    /funds/:id                  : Retrieve a fund.
//   - POST   /funds/:id/contributions    : Record a contribution.
//   - GET    /funds/:id/contributions    : List a fund's ledger entries.
func Routes(app *fiber.App, fundSvc *fundsvc.Service, ledgerSvc *ledger.Service) {
	app.Post("/funds", CreateFund(fundSvc))
	app.Get("/funds", ListFunds(fundSvc))
	app.Get("/funds/:id", GetFund(fundSvc))
	app.Post("/funds/:id/contributions", Contribute(ledgerSvc))
	app.Get("/funds/:id/contributions", ListContributions(fundSvc))
}

// CreateFund returns a handler that creates a collective fund.
// @Summary Create a collective fund
// @Description Creates a new collective fund in the active state. Amounts are in the smallest currency unit.
// @Tags funds
// @Accept json
// @Produce json
// @Param request body CreateFundRequest true "Fund details"
// @Success 201 {object} common.Response "Fund created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 422 {object} common.ProblemDetails "Unsupported currency"
// @Router /funds [post]
func CreateFund(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateFundRequest](c)
		if input == nil {
			return err // error response already written
		}
		creatorID, err := uuid.Parse(input.CreatorID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid creator id", err)
		}
		params := fundsvc.CreateParams{
			CreatorID:    creatorID,
			Title:        input.Title,
			TargetAmount: input.TargetAmount,
			Currency:     currency.Code(input.Currency),
			Deadline:     input.Deadline,
			Visible:      true,
		}
		if input.Visible != nil {
			params.Visible = *input.Visible
		}
		if input.BeneficiaryID != "" {
			beneficiaryID, err := uuid.Parse(input.BeneficiaryID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid beneficiary id", err)
			}
			params.BeneficiaryID = &beneficiaryID
		}

		f, err := fundSvc.Create(c.Context(), params)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create fund", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Fund created", toFundResponse(f))
	}
}

// ListFunds returns a handler that lists publicly visible funds.
// @Summary List visible funds
// @Tags funds
// @Produce json
// @Success 200 {object} common.Response "Funds"
// @Router /funds [get]
func ListFunds(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		funds, err := fundSvc.ListVisible(c.Context(), limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list funds", err)
		}
		out := make([]FundResponse, 0, len(funds))
		for _, f := range funds {
			out = append(out, toFundResponse(f))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Funds", out)
	}
}

// GetFund returns a handler that retrieves a single fund.
// @Summary Get a fund
// @Tags funds
// @Produce json
// @Param id path string true "Fund ID"
// @Success 200 {object} common.Response "Fund"
// @Failure 404 {object} common.ProblemDetails "Fund not found"
// @Router /funds/{id} [get]
func GetFund(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid fund id", err)
		}
		f, err := fundSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get fund", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Fund", toFundResponse(f))
	}
}

// Contribute returns a handler that records a contribution against a fund.
// The money itself was captured upstream; this endpoint books the ledger
// entry and updates the fund total atomically.
// @Summary Record a contribution
// @Tags funds
// @Accept json
// @Produce json
// @Param id path string true "Fund ID"
// @Param request body ContributeRequest true "Contribution details"
// @Success 201 {object} common.Response "Contribution recorded"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 409 {object} common.ProblemDetails "Fund is not active"
// @Failure 422 {object} common.ProblemDetails "Currency mismatch"
// @Router /funds/{id}/contributions [post]
func Contribute(ledgerSvc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid fund id", err)
		}
		input, err := common.BindAndValidate[ContributeRequest](c)
		if input == nil {
			return err
		}
		contributorID, err := uuid.Parse(input.ContributorID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid contributor id", err)
		}
		amount, err := moneyFromRequest(input.Amount, input.Currency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err)
		}

		contribution, err := ledgerSvc.Record(c.Context(), fundID, contributorID, amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to record contribution", err)
		}
		return common.SuccessResponseJSON(
			c,
			fiber.StatusCreated,
			"Contribution recorded",
			toContributionResponse(contribution),
		)
	}
}

// ListContributions returns a handler that lists a fund's ledger entries.
// @Summary List fund contributions
// @Tags funds
// @Produce json
// @Param id path string true "Fund ID"
// @Success 200 {object} common.Response "Contributions"
// @Failure 404 {object} common.ProblemDetails "Fund not found"
// @Router /funds/{id}/contributions [get]
func ListContributions(fundSvc *fundsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid fund id", err)
		}
		contributions, err := fundSvc.ListContributions(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list contributions", err)
		}
		out := make([]ContributionResponse, 0, len(contributions))
		for _, contribution := range contributions {
			out = append(out, toContributionResponse(contribution))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Contributions", out)
	}
}
