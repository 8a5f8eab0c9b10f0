package refund_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga/cagnotte/infra/directory"
	"github.com/teranga/cagnotte/pkg/currency"
	"github.com/teranga/cagnotte/pkg/domain/fund"
	"github.com/teranga/cagnotte/pkg/money"
	"github.com/teranga/cagnotte/pkg/repository"
	"github.com/teranga/cagnotte/pkg/service/refund"
	"github.com/teranga/cagnotte/pkg/testutils"
)

func newIssuer(t *testing.T) (*refund.Issuer, *directory.Static) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := directory.NewStatic()
	return refund.NewIssuer(dir, logger), dir
}

func seedExpiringFund(t *testing.T, uow *testutils.MemoryUoW, contributors map[uuid.UUID]int64) *fund.Fund {
	t.Helper()
	f, err := fund.New().
		WithCreatorID(uuid.New()).
		WithTitle("Group gift").
		WithTarget(10000).
		WithCurrency(currency.XOF).
		Build()
	require.NoError(t, err)
	uow.SeedFund(f)

	ctx := context.Background()
	for contributor, amount := range contributors {
		c := fund.NewContribution(f.ID, contributor, money.Must(amount, currency.XOF))
		err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
			contributions, err := tx.ContributionRepository()
			if err != nil {
				return err
			}
			return contributions.Create(ctx, c)
		})
		require.NoError(t, err)
	}
	return f
}

func TestIssue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("books one pending obligation per contribution", func(t *testing.T) {
		issuer, dir := newIssuer(t)
		uow := testutils.NewMemoryUoW()
		amadou, bintou := uuid.New(), uuid.New()
		dir.Register(amadou, "Amadou Diop")
		dir.Register(bintou, "Bintou Fall")
		f := seedExpiringFund(t, uow, map[uuid.UUID]int64{amadou: 2000, bintou: 1000})

		var obligations []*fund.RefundObligation
		err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
			var err error
			obligations, err = issuer.Issue(ctx, tx, f)
			return err
		})
		require.NoError(t, err)
		require.Len(t, obligations, 2)

		byContributor := make(map[uuid.UUID]*fund.RefundObligation, 2)
		for _, o := range obligations {
			assert.Equal(t, f.ID, o.FundID)
			assert.Equal(t, fund.ObligationPending, o.Status)
			assert.Equal(t, fund.ReasonFundExpired, o.Reason)
			assert.Equal(t, "Group gift", o.FundTitle)
			byContributor[o.ContributorID] = o
		}
		require.Contains(t, byContributor, amadou)
		assert.Equal(t, int64(2000), byContributor[amadou].Amount.Amount())
		assert.Equal(t, "Amadou Diop", byContributor[amadou].ContributorName)
		require.Contains(t, byContributor, bintou)
		assert.Equal(t, int64(1000), byContributor[bintou].Amount.Amount())
		assert.Equal(t, "Bintou Fall", byContributor[bintou].ContributorName)
	})

	t.Run("issuing twice never duplicates", func(t *testing.T) {
		issuer, _ := newIssuer(t)
		uow := testutils.NewMemoryUoW()
		f := seedExpiringFund(t, uow, map[uuid.UUID]int64{uuid.New(): 2000, uuid.New(): 1000})

		for range 2 {
			var obligations []*fund.RefundObligation
			err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
				var err error
				obligations, err = issuer.Issue(ctx, tx, f)
				return err
			})
			require.NoError(t, err)
			// Both the first and the repeated issuance return the full set.
			assert.Len(t, obligations, 2)
		}
		assert.Len(t, uow.Obligations(f.ID), 2)
	})

	t.Run("falls back to the contributor id when the name is unknown", func(t *testing.T) {
		issuer, _ := newIssuer(t)
		uow := testutils.NewMemoryUoW()
		contributor := uuid.New()
		f := seedExpiringFund(t, uow, map[uuid.UUID]int64{contributor: 500})

		err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
			_, err := issuer.Issue(ctx, tx, f)
			return err
		})
		require.NoError(t, err)

		obligations := uow.Obligations(f.ID)
		require.Len(t, obligations, 1)
		assert.Equal(t, contributor.String(), obligations[0].ContributorName)
	})

	t.Run("fund without contributions yields no obligations", func(t *testing.T) {
		issuer, _ := newIssuer(t)
		uow := testutils.NewMemoryUoW()
		f := seedExpiringFund(t, uow, nil)

		var obligations []*fund.RefundObligation
		err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
			var err error
			obligations, err = issuer.Issue(ctx, tx, f)
			return err
		})
		require.NoError(t, err)
		assert.Empty(t, obligations)
	})
}
