package fanout_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga/cagnotte/infra/fanout"
	"github.com/teranga/cagnotte/pkg/notification"
)

func TestMemoryPublish(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := fanout.NewMemory(logger)
	ctx := context.Background()

	fundID := uuid.New()
	require.NoError(t, m.Publish(ctx,
		notification.Intent{RecipientID: uuid.New(), Type: notification.IntentContributorRefund, FundID: fundID},
		notification.Intent{RecipientID: uuid.New(), Type: notification.IntentCreatorSummary, FundID: fundID},
	))

	published := m.Published()
	require.Len(t, published, 2)
	assert.Equal(t, notification.IntentContributorRefund, published[0].Type)
	assert.Equal(t, notification.IntentCreatorSummary, published[1].Type)

	// Published hands out a copy; mutating it must not affect the recorder.
	published[0].FundID = uuid.New()
	assert.Equal(t, fundID, m.Published()[0].FundID)

	m.Clear()
	assert.Empty(t, m.Published())
}
