package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galeragate-ledger/internal/model"
)

func paidReceipt() model.Receipt {
	return model.Receipt{
		Visitor: model.Visitor{ID: 1, Name: "Ana", Age: 29, EntryDate: "2024-05-01", ExitDate: "2024-05-05"},
		Selections: []model.Selection{
			{ID: 1, VisitorID: 1, Category: "Resort", Offering: "Mermaid Resort"},
			{ID: 2, VisitorID: 1, Category: "Places", Offering: "White Beach"},
		},
		Payment: &model.Payment{ID: 7, VisitorID: 1, Method: model.MethodCreditCard, AmountCents: 50000, Date: "2024-05-01"},
	}
}

func TestNewReservationConfirmed(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.FixedZone("PST", 8*3600))
	ev := NewReservationConfirmed(paidReceipt(), "PHP", at)

	assert.Equal(t, int64(1), ev.VisitorID)
	assert.Equal(t, []string{"Resort: Mermaid Resort", "Places: White Beach"}, ev.Selections)
	assert.Equal(t, int64(7), ev.PaymentID)
	assert.Equal(t, "Credit Card", ev.PaymentMethod)
	assert.Equal(t, "500.00", ev.Amount)
	assert.Equal(t, "2024-05-01T01:30:00Z", ev.ConfirmedAt)

	unpaid := NewReservationConfirmed(model.Receipt{Visitor: model.Visitor{ID: 2, Name: "Ben"}}, "PHP", at)
	assert.Zero(t, unpaid.PaymentID)
	assert.Empty(t, unpaid.Amount)
	assert.NotNil(t, unpaid.Selections)
}

func TestFormatEventLine(t *testing.T) {
	ev := NewReservationConfirmed(paidReceipt(), "USD", time.Date(2024, 5, 1, 1, 30, 0, 0, time.UTC))
	line := FormatEventLine(ev)

	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.Contains(t, line, "[2024-05-01T01:30:00Z] Reservation confirmed")
	assert.Contains(t, line, `visitor="Ana"`)
	assert.Contains(t, line, "stay=2024-05-01..2024-05-05")
	assert.Contains(t, line, "amount=$500.00")
	assert.Contains(t, line, "selections=[Resort: Mermaid Resort, Places: White Beach]")

	ev.PaymentID = 0
	ev.Selections = nil
	line = FormatEventLine(ev)
	assert.Contains(t, line, "amount=unpaid")
	assert.Contains(t, line, "selections=[]")
}

func TestHandleMessageAppends(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "reservations.log")
	body, err := json.Marshal(NewReservationConfirmed(paidReceipt(), "PHP", time.Now()))
	require.NoError(t, err)

	require.NoError(t, HandleMessage(body, logPath))
	require.NoError(t, HandleMessage(body, logPath))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "Reservation confirmed"))

	assert.Error(t, HandleMessage([]byte("{not json"), logPath))
}
