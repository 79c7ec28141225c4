package main

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/galeragate-ledger/internal/model"
	"github.com/iliyamo/galeragate-ledger/internal/utils"
)

// setupLedger points the commands at a fresh sqlite file holding one tourist
// and an admin whose password is "admin123".
func setupLedger(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	hash, err := utils.HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(dir, "ledger.db"))
	t.Setenv("LOG_FILE", filepath.Join(dir, "app.log"))
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("ADMIN_EMAIL", "admin@galeragate.com")
	t.Setenv("ADMIN_PASSWORD_HASH", hash)
	t.Setenv("BCRYPT_COST", "4")

	a, err := bootstrap(context.Background())
	require.NoError(t, err)
	defer a.Close()
	_, err = a.svc.Visitors.Register(context.Background(), model.VisitorInput{
		Name: "Ana", Age: "29", Sex: "Female", Nationality: "Filipino",
		ContactNumber: "09171234567", EntryDate: "2024-05-01", ExitDate: "2024-05-05",
	})
	require.NoError(t, err)
}

// withIO swaps the command streams for the duration of the test.
func withIO(t *testing.T, in string) *bytes.Buffer {
	t.Helper()
	out := &bytes.Buffer{}
	oldIn, oldOut := stdin, stdout
	stdin, stdout = strings.NewReader(in), out
	t.Cleanup(func() { stdin, stdout = oldIn, oldOut })
	return out
}

func execute(t *testing.T, cmd subcommands.Command) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	return cmd.Execute(context.Background(), f)
}

func visitorCount(t *testing.T) int64 {
	t.Helper()
	a, err := bootstrap(context.Background())
	require.NoError(t, err)
	defer a.Close()
	n, err := a.svc.Visitors.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestResetWithoutConfirmation(t *testing.T) {
	setupLedger(t)
	out := withIO(t, "admin123\n")

	for _, confirm := range []string{"no", "", "y"} {
		status := execute(t, &resetCmd{confirm: confirm})
		assert.Equal(t, subcommands.ExitUsageError, status, confirm)
	}
	assert.Contains(t, out.String(), "reset cancelled, no changes made")
	assert.Equal(t, int64(1), visitorCount(t))
}

func TestResetRequiresAdminPassword(t *testing.T) {
	setupLedger(t)

	out := withIO(t, "wrong\n")
	assert.Equal(t, subcommands.ExitFailure, execute(t, &resetCmd{confirm: "yes"}))
	assert.NotContains(t, out.String(), "tables cleared")
	assert.Equal(t, int64(1), visitorCount(t))

	withIO(t, "admin123\n")
	assert.Equal(t, subcommands.ExitFailure, execute(t, &resetCmd{confirm: "yes", email: "someone@else.com"}))
	assert.Equal(t, int64(1), visitorCount(t))
}

func TestResetWithAdminPassword(t *testing.T) {
	setupLedger(t)
	out := withIO(t, "admin123\n")

	assert.Equal(t, subcommands.ExitSuccess, execute(t, &resetCmd{confirm: " YES "}))
	assert.Contains(t, out.String(), "tables cleared and ids reset")
	assert.Zero(t, visitorCount(t))
}

func TestCount(t *testing.T) {
	setupLedger(t)
	out := withIO(t, "")

	assert.Equal(t, subcommands.ExitSuccess, execute(t, &countCmd{}))
	assert.Equal(t, "1\n", out.String())
}

func TestHashPassword(t *testing.T) {
	out := withIO(t, "admin123")

	assert.Equal(t, subcommands.ExitSuccess, execute(t, &hashPasswordCmd{cost: bcrypt.MinCost}))
	hash := strings.TrimSpace(out.String())
	assert.True(t, utils.VerifyPassword(hash, "admin123"))
}
