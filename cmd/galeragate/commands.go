package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/iliyamo/galeragate-ledger/internal/config"
	"github.com/iliyamo/galeragate-ledger/internal/console"
	"github.com/iliyamo/galeragate-ledger/internal/logger"
	"github.com/iliyamo/galeragate-ledger/internal/queue"
	"github.com/iliyamo/galeragate-ledger/internal/service"
	"github.com/iliyamo/galeragate-ledger/internal/utils"
)

var commands = []subcommands.Command{
	&runCmd{},
	&migrateCmd{},
	&reportCmd{},
	&countCmd{},
	&resetCmd{},
	&hashPasswordCmd{},
	&consumeCmd{},
}

// Replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

type runCmd struct {
	plain bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "start the interactive tourist and admin console" }
func (*runCmd) Usage() string {
	return `galeragate run [-plain]

  Opens the welcome menu: register as a tourist and make selections, log in
  as admin, or read the FAQ.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print receipts and reports as raw markdown")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := bootstrap(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	r, err := console.NewRenderer(a.svc.Payments.Currency(), !c.plain)
	if err != nil {
		return fail(err)
	}
	if err := console.New(stdin, stdout, a.svc, r).Run(ctx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create the ledger tables if they do not exist" }
func (*migrateCmd) Usage() string    { return "galeragate migrate\n" }

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := bootstrap(ctx)
	if err != nil {
		return fail(err)
	}
	a.Close()
	fmt.Fprintf(stdout, "schema ready (%s)\n", a.cfg.DB.Driver)
	return subcommands.ExitSuccess
}

type reportCmd struct {
	plain bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print every payment with totals per method" }
func (*reportCmd) Usage() string    { return "galeragate report [-plain]\n" }

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := bootstrap(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	rows, err := a.svc.Payments.Report(ctx)
	if err != nil {
		return fail(err)
	}
	r, err := console.NewRenderer(a.svc.Payments.Currency(), !c.plain)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, r.Render(r.ReportMarkdown(rows)))
	return subcommands.ExitSuccess
}

type countCmd struct{}

func (*countCmd) Name() string     { return "count" }
func (*countCmd) Synopsis() string { return "print the number of registered tourists" }
func (*countCmd) Usage() string    { return "galeragate count\n" }

func (*countCmd) SetFlags(*flag.FlagSet) {}

func (*countCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := bootstrap(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	n, err := a.svc.Visitors.Count(ctx)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, n)
	return subcommands.ExitSuccess
}

type resetCmd struct {
	confirm string
	email   string
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete all tourists, selections and payments and restart ids" }
func (*resetCmd) Usage() string {
	return `echo -n password | galeragate reset -confirm yes [-email admin]

  Empties the ledger. Nothing happens unless -confirm is "yes". The admin
  password is read from stdin and checked like a console login, so the
  attempt counts against the login limiter.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.confirm, "confirm", "", `must be "yes" to reset`)
	f.StringVar(&c.email, "email", "", "admin email (defaults to ADMIN_EMAIL)")
}

func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !service.Confirmed(c.confirm) {
		fmt.Fprintln(stdout, "reset cancelled, no changes made")
		return subcommands.ExitUsageError
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	email := c.email
	if email == "" {
		email = a.cfg.AdminEmail
	}
	password, err := readLine(stdin)
	if err != nil {
		return fail(fmt.Errorf("read password: %w", err))
	}
	res, err := a.svc.Admin.Login(ctx, email, password)
	if err != nil {
		return fail(err)
	}
	if err := a.svc.Admin.Authorize(res.Token); err != nil {
		return fail(err)
	}

	out, err := a.svc.Admin.Reset(ctx, c.confirm)
	if err != nil {
		return fail(err)
	}
	if out == service.OutcomeCancelled {
		fmt.Fprintln(stdout, "reset cancelled, no changes made")
		return subcommands.ExitUsageError
	}
	fmt.Fprintln(stdout, "tables cleared and ids reset")
	return subcommands.ExitSuccess
}

type hashPasswordCmd struct {
	cost int
}

func (*hashPasswordCmd) Name() string     { return "hash-password" }
func (*hashPasswordCmd) Synopsis() string { return "print the bcrypt hash of a password read from stdin" }
func (*hashPasswordCmd) Usage() string    { return "echo -n secret | galeragate hash-password [-cost n]\n" }

func (c *hashPasswordCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.cost, "cost", 0, "bcrypt cost (defaults to BCRYPT_COST)")
}

func (c *hashPasswordCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cost := c.cost
	if cost == 0 {
		cfg, err := config.Load()
		if err != nil {
			return fail(err)
		}
		cost = cfg.BcryptCost
	}
	password, err := readLine(stdin)
	if err != nil {
		return fail(fmt.Errorf("read password: %w", err))
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, hash)
	return subcommands.ExitSuccess
}

// readLine returns the first line of r without its line ending.  A final
// line with no newline is accepted.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type consumeCmd struct {
	logPath string
}

func (*consumeCmd) Name() string     { return "consume" }
func (*consumeCmd) Synopsis() string { return "append reservation.confirmed events to a log file" }
func (*consumeCmd) Usage() string    { return "galeragate consume [-log path]\n" }

func (c *consumeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.logPath, "log", "logs/reservations.log", "file each event line is appended to")
}

func (c *consumeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	closeLog, err := logger.Init(cfg.Env, cfg.LogFile)
	if err != nil {
		return fail(err)
	}
	defer closeLog()

	err = queue.StartReceiptConsumer(ctx, cfg.Events.URL, cfg.Events.Queue, c.logPath)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
