package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/galeragate-ledger/internal/auth"
	"github.com/iliyamo/galeragate-ledger/internal/catalog"
	"github.com/iliyamo/galeragate-ledger/internal/config"
	"github.com/iliyamo/galeragate-ledger/internal/database"
	"github.com/iliyamo/galeragate-ledger/internal/model"
	"github.com/iliyamo/galeragate-ledger/internal/repository"
	"github.com/iliyamo/galeragate-ledger/internal/service"
	"github.com/iliyamo/galeragate-ledger/internal/utils"
)

func newTestServices(t *testing.T) Services {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	visitorRepo := repository.NewVisitorRepo(db)
	selectionRepo := repository.NewSelectionRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	hash, err := utils.HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	admin, err := service.NewAdminService(repository.NewAdminRepo(db),
		auth.NewBcryptVerifier("admin@galeragate.com", hash),
		auth.NewMemoryLimiter(config.LoginLimitConfig{Capacity: 3, RefillInterval: time.Minute}),
		"", time.Minute)
	require.NoError(t, err)

	receipts := service.NewReceiptService(visitorRepo, selectionRepo, paymentRepo)
	return Services{
		Visitors:   service.NewVisitorService(visitorRepo, selectionRepo),
		Selections: service.NewSelectionService(selectionRepo, catalog.Default()),
		Receipts:   receipts,
		Payments:   service.NewPaymentService(paymentRepo, receipts, nil, "USD"),
		Admin:      admin,
	}
}

func runScript(t *testing.T, svc Services, lines ...string) string {
	t.Helper()
	r, err := NewRenderer("USD", false)
	require.NoError(t, err)
	var out bytes.Buffer
	c := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, svc, r)
	c.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Good Morning", Greeting(5))
	assert.Equal(t, "Good Morning", Greeting(11))
	assert.Equal(t, "Good Afternoon", Greeting(12))
	assert.Equal(t, "Good Afternoon", Greeting(17))
	assert.Equal(t, "Good Evening", Greeting(18))
	assert.Equal(t, "Good Evening", Greeting(2))
}

func TestTouristReservation(t *testing.T) {
	svc := newTestServices(t)
	out := runScript(t, svc,
		"1",
		"Ana", "abc", "29", "Female", "Filipino", "09171234567", "2024-05-01", "2024-05-05",
		"1",
		"1", "1",
		"1", "1",
		"4", "9",
		"5", "1", "2", "500", "2024-05-01",
		"7",
		"3",
		"4",
	)

	assert.Contains(t, out, "Good Morning! Welcome to GaleraGate")
	assert.Contains(t, out, "Age must be a positive number")
	assert.Contains(t, out, "Your Tourist ID is: 0001")
	assert.Contains(t, out, "Added: Mermaid Resort under Resort")
	assert.Contains(t, out, "You already selected that option.")
	assert.Contains(t, out, "Invalid input")
	assert.Contains(t, out, "[1] Resort: Mermaid Resort")
	assert.Contains(t, out, "Payment completed successfully!")
	assert.Contains(t, out, "**Payment Method:** Cash")
	assert.Contains(t, out, "**Amount Paid:** $500.00")
	assert.Contains(t, out, "Thank you for using GaleraGate! Goodbye!")

	p, err := svc.Payments.Latest(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.MethodCash, p.Method)
}

func TestTouristDeleteSelection(t *testing.T) {
	svc := newTestServices(t)
	out := runScript(t, svc,
		"1",
		"Ben", "40", "Male", "Spanish", "555", "2024-06-01", "2024-06-03",
		"1",
		"6",
		"3", "2",
		"6", "1", "no",
		"6", "1", "yes",
		"7",
		"3",
		"4",
	)

	assert.Contains(t, out, "No selections to delete.")
	assert.Contains(t, out, "Added: Scuba Diving under Activities")
	assert.Contains(t, out, "Deletion cancelled. No changes were made.")
	assert.Contains(t, out, "Selection deleted successfully.")

	list, err := svc.Selections.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAdminPanel(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	for _, name := range []string{"Ana", "Ben"} {
		_, err := svc.Visitors.Register(ctx, model.VisitorInput{Name: name, Age: "30"})
		require.NoError(t, err)
	}
	_, err := svc.Payments.Record(ctx, 2, "paypal", "75.5", "2024-05-02")
	require.NoError(t, err)

	out := runScript(t, svc,
		"2",
		"admin@galeragate.com", "wrong",
		"admin@galeragate.com", "admin123",
		"1",
		"3",
		"5",
		"4", "1",
		"6", "no",
		"6", "yes",
		"3",
		"7",
		"4",
	)

	assert.Contains(t, out, "2 attempts left")
	assert.Contains(t, out, "Login successful!")
	assert.Contains(t, out, "## Tourist 0001: Ana")
	assert.Contains(t, out, "Total Number of Tourists: 2")
	assert.Contains(t, out, "| 1 | Ben | $75.50 | PayPal | 2024-05-02 |")
	assert.Contains(t, out, "**PayPal:** $75.50 (1 transactions)")
	assert.Contains(t, out, "Tourist deleted successfully.")
	assert.Contains(t, out, "Reset canceled. No changes made.")
	assert.Contains(t, out, "Tables cleared and IDs reset successfully!")
	assert.Contains(t, out, "Total Number of Tourists: 0")
}

func TestAdminLockout(t *testing.T) {
	svc := newTestServices(t)
	out := runScript(t, svc,
		"2",
		"admin@galeragate.com", "a",
		"admin@galeragate.com", "b",
		"admin@galeragate.com", "c",
		"4",
	)
	assert.Contains(t, out, "No attempts left.")
	assert.NotContains(t, out, "Admin Panel")
}

func TestFAQAndEndOfInput(t *testing.T) {
	svc := newTestServices(t)
	out := runScript(t, svc, "3", "2", "y", "8", "x")
	assert.Contains(t, out, "What is the Tourist ID and how is it generated?")
	assert.Contains(t, out, "Returning to Main Menu...")
	assert.Contains(t, out, "Invalid choice. Please try again.")
}
