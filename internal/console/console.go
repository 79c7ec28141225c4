// Package console is the interactive front end: the welcome menu, the
// tourist registration and selection flow, the admin panel and the FAQ.
// It only talks to the services.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/galeragate-ledger/internal/service"
)

const rule = "================================================================================"

// Services are the operations the console drives.
type Services struct {
	Visitors   *service.VisitorService
	Selections *service.SelectionService
	Receipts   *service.ReceiptService
	Payments   *service.PaymentService
	Admin      *service.AdminService
}

type Console struct {
	in  *bufio.Scanner
	out io.Writer
	svc Services
	r   *Renderer
	now func() time.Time
}

func New(in io.Reader, out io.Writer, svc Services, r *Renderer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
		svc: svc,
		r:   r,
		now: time.Now,
	}
}

// Greeting picks the salutation for the hour of day.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good Morning"
	case hour >= 12 && hour < 18:
		return "Good Afternoon"
	}
	return "Good Evening"
}

// Run shows the welcome menu until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	err := c.mainMenu(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) mainMenu(ctx context.Context) error {
	for {
		c.println(rule)
		c.printf("  %s! Welcome to GaleraGate\n", Greeting(c.now().Hour()))
		c.println("  Your Gateway to Puerto Galera's Paradise!")
		c.println(rule)
		c.println("[1] Tourist - Explore attractions, make reservations, and more.")
		c.println("[2] Admin - Manage tourist data and view reports.")
		c.println("[3] FAQ's - Learn how to use the system and find answers.")
		c.println("[4] Exit - Close the application.")

		choice, err := c.choose("Enter your choice: ", "1", "2", "3", "4")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = c.tourist(ctx)
		case "2":
			err = c.adminLogin(ctx)
		case "3":
			err = c.faq()
		case "4":
			c.println("Thank you for using GaleraGate! Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// prompt prints label and returns the next trimmed input line.  io.EOF is
// returned once input is exhausted.
func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// choose reprompts until the answer is one of valid.
func (c *Console) choose(label string, valid ...string) (string, error) {
	for {
		answer, err := c.prompt(label)
		if err != nil {
			return "", err
		}
		for _, v := range valid {
			if strings.EqualFold(answer, v) {
				return v, nil
			}
		}
		c.println("Invalid choice. Please try again.")
	}
}

// report prints an input error and swallows it; any other error is
// returned so the caller aborts.
func (c *Console) report(err error) error {
	if service.IsInputError(err) {
		c.println(userMessage(err))
		return nil
	}
	zap.L().Error("console operation failed", zap.Error(err))
	return err
}

func (c *Console) markdown(md string) { fmt.Fprintln(c.out, c.r.Render(md)) }

func (c *Console) println(a ...any)               { fmt.Fprintln(c.out, a...) }
func (c *Console) printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }

func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrAlreadySelected):
		return "You already selected that option."
	case errors.Is(err, service.ErrNotFound):
		return "Not found: " + err.Error()
	}
	return "Invalid input: " + err.Error()
}
