package notification_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga/cagnotte/pkg/currency"
	"github.com/teranga/cagnotte/pkg/money"
	"github.com/teranga/cagnotte/pkg/notification"
)

func TestIntentPayloadContract(t *testing.T) {
	t.Parallel()
	recipient := uuid.New()
	fundID := uuid.New()

	t.Run("contributor_refund carries the amount", func(t *testing.T) {
		amount := money.Must(2000, currency.XOF)
		data, err := json.Marshal(notification.Intent{
			RecipientID: recipient,
			Type:        notification.IntentContributorRefund,
			FundID:      fundID,
			Amount:      &amount,
		})
		require.NoError(t, err)
		assert.JSONEq(t, fmt.Sprintf(`{
			"recipient_id": %q,
			"type": "contributor_refund",
			"fund_id": %q,
			"amount": {"amount": 2000, "currency": "XOF"}
		}`, recipient, fundID), string(data))
	})

	t.Run("creator_summary carries the final counts", func(t *testing.T) {
		data, err := json.Marshal(notification.Intent{
			RecipientID: recipient,
			Type:        notification.IntentCreatorSummary,
			FundID:      fundID,
			Summary: &notification.Summary{
				Target:       10000,
				Collected:    3000,
				Contributors: 2,
			},
		})
		require.NoError(t, err)
		assert.JSONEq(t, fmt.Sprintf(`{
			"recipient_id": %q,
			"type": "creator_summary",
			"fund_id": %q,
			"summary": {"target": 10000, "collected": 3000, "contributors": 2}
		}`, recipient, fundID), string(data))
	})

	t.Run("fund_completed has no extra payload", func(t *testing.T) {
		data, err := json.Marshal(notification.Intent{
			RecipientID: recipient,
			Type:        notification.IntentFundCompleted,
			FundID:      fundID,
		})
		require.NoError(t, err)
		assert.JSONEq(t, fmt.Sprintf(`{
			"recipient_id": %q,
			"type": "fund_completed",
			"fund_id": %q
		}`, recipient, fundID), string(data))
	})
}
