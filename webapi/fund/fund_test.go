package fund_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga/cagnotte/infra/fanout"
	"github.com/teranga/cagnotte/pkg/currency"
	domainfund "github.com/teranga/cagnotte/pkg/domain/fund"
	fundsvc "github.com/teranga/cagnotte/pkg/service/fund"
	"github.com/teranga/cagnotte/pkg/service/ledger"
	"github.com/teranga/cagnotte/pkg/testutils"
	fundweb "github.com/teranga/cagnotte/webapi/fund"
)

type fixture struct {
	app *fiber.App
	uow *testutils.MemoryUoW
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := testutils.NewMemoryUoW()
	fo := fanout.NewMemory(logger)

	app := fiber.New()
	fundweb.Routes(app, fundsvc.New(uow, logger), ledger.New(uow, fo, logger))
	return &fixture{app: app, uow: uow}
}

func (fx *fixture) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := fx.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func (fx *fixture) seedFund(t *testing.T, status domainfund.Status) *domainfund.Fund {
	t.Helper()
	f, err := domainfund.New().
		WithCreatorID(uuid.New()).
		WithTitle("Birthday pot").
		WithTarget(10000).
		WithCurrency(currency.XOF).
		WithStatus(status).
		Build()
	require.NoError(t, err)
	fx.uow.SeedFund(f)
	return f
}

func TestCreateFund(t *testing.T) {
	t.Parallel()

	t.Run("creates a fund", func(t *testing.T) {
		fx := newFixture(t)
		deadline := time.Now().Add(7 * 24 * time.Hour).UTC()
		resp := fx.request(t, http.MethodPost, "/funds", fiber.Map{
			"creator_id":    uuid.New().String(),
			"title":         "Birthday pot",
			"target_amount": 10000,
			"currency":      "XOF",
			"deadline":      deadline,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created fundweb.FundResponse
		decodeData(t, resp, &created)
		assert.Equal(t, "Birthday pot", created.Title)
		assert.Equal(t, int64(10000), created.TargetAmount)
		assert.Equal(t, int64(0), created.RaisedAmount)
		assert.Equal(t, "XOF", created.Currency)
		assert.Equal(t, "active", created.Status)
		require.NotNil(t, created.Deadline)
	})

	t.Run("rejects a missing title", func(t *testing.T) {
		fx := newFixture(t)
		resp := fx.request(t, http.MethodPost, "/funds", fiber.Map{
			"creator_id":    uuid.New().String(),
			"target_amount": 10000,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects an unsupported currency", func(t *testing.T) {
		fx := newFixture(t)
		resp := fx.request(t, http.MethodPost, "/funds", fiber.Map{
			"creator_id":    uuid.New().String(),
			"title":         "Birthday pot",
			"target_amount": 10000,
			"currency":      "ZZZ",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestGetFund(t *testing.T) {
	t.Parallel()

	t.Run("returns the fund", func(t *testing.T) {
		fx := newFixture(t)
		f := fx.seedFund(t, domainfund.StatusActive)
		resp := fx.request(t, http.MethodGet, "/funds/"+f.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got fundweb.FundResponse
		decodeData(t, resp, &got)
		assert.Equal(t, f.ID.String(), got.ID)
	})

	t.Run("unknown fund is a 404", func(t *testing.T) {
		fx := newFixture(t)
		resp := fx.request(t, http.MethodGet, "/funds/"+uuid.New().String(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestContribute(t *testing.T) {
	t.Parallel()

	t.Run("records a contribution", func(t *testing.T) {
		fx := newFixture(t)
		f := fx.seedFund(t, domainfund.StatusActive)
		contributor := uuid.New()

		resp := fx.request(t, http.MethodPost, fmt.Sprintf("/funds/%s/contributions", f.ID), fiber.Map{
			"contributor_id": contributor.String(),
			"amount":         4000,
			"currency":       "XOF",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var recorded fundweb.ContributionResponse
		decodeData(t, resp, &recorded)
		assert.Equal(t, contributor.String(), recorded.ContributorID)
		assert.Equal(t, int64(4000), recorded.Amount)

		stored, ok := fx.uow.Fund(f.ID)
		require.True(t, ok)
		assert.Equal(t, int64(4000), stored.Raised.Amount())
	})

	t.Run("currency mismatch is a 422", func(t *testing.T) {
		fx := newFixture(t)
		f := fx.seedFund(t, domainfund.StatusActive)
		resp := fx.request(t, http.MethodPost, fmt.Sprintf("/funds/%s/contributions", f.ID), fiber.Map{
			"contributor_id": uuid.New().String(),
			"amount":         4000,
			"currency":       "EUR",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("terminal fund is a 409", func(t *testing.T) {
		fx := newFixture(t)
		f := fx.seedFund(t, domainfund.StatusExpired)
		resp := fx.request(t, http.MethodPost, fmt.Sprintf("/funds/%s/contributions", f.ID), fiber.Map{
			"contributor_id": uuid.New().String(),
			"amount":         4000,
			"currency":       "XOF",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("unknown fund is a 404", func(t *testing.T) {
		fx := newFixture(t)
		resp := fx.request(t, http.MethodPost, fmt.Sprintf("/funds/%s/contributions", uuid.New()), fiber.Map{
			"contributor_id": uuid.New().String(),
			"amount":         4000,
			"currency":       "XOF",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListContributions(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	f := fx.seedFund(t, domainfund.StatusActive)

	for _, amount := range []int{2000, 1000} {
		resp := fx.request(t, http.MethodPost, fmt.Sprintf("/funds/%s/contributions", f.ID), fiber.Map{
			"contributor_id": uuid.New().String(),
			"amount":         amount,
			"currency":       "XOF",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := fx.request(t, http.MethodGet, fmt.Sprintf("/funds/%s/contributions", f.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []fundweb.ContributionResponse
	decodeData(t, resp, &entries)
	assert.Len(t, entries, 2)

	resp = fx.request(t, http.MethodGet, fmt.Sprintf("/funds/%s/contributions", uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListFunds(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	fx.seedFund(t, domainfund.StatusActive)

	resp := fx.request(t, http.MethodGet, "/funds", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var funds []fundweb.FundResponse
	decodeData(t, resp, &funds)
	assert.Len(t, funds, 1)
}
