package console

import (
	"context"
	"errors"
	"strconv"

	"github.com/iliyamo/galeragate-ledger/internal/service"
)

const maxLoginPrompts = 3

func (c *Console) adminLogin(ctx context.Context) error {
	c.println("  Admin Login")
	c.println(rule)

	for attempt := 1; attempt <= maxLoginPrompts; attempt++ {
		email, err := c.prompt("Enter email: ")
		if err != nil {
			return err
		}
		password, err := c.prompt("Enter password: ")
		if err != nil {
			return err
		}

		res, err := c.svc.Admin.Login(ctx, email, password)
		var loginErr *service.LoginError
		switch {
		case err == nil:
			c.println("\nLogin successful! Redirecting to Admin Panel...")
			return c.adminMenu(ctx, res.Token)
		case errors.Is(err, service.ErrTooManyAttempts):
			c.println("Too many failed attempts. Please try again later. (" + err.Error() + ")")
			return nil
		case errors.As(err, &loginErr):
			if loginErr.Remaining == 0 {
				c.println("Invalid email or password. No attempts left.")
				return nil
			}
			c.println(loginErr.Error() + ". Please try again.")
		default:
			return c.report(err)
		}
	}
	c.println("Too many failed attempts. Please try again later.")
	return nil
}

func (c *Console) adminMenu(ctx context.Context, token string) error {
	for {
		c.println("\n" + rule)
		c.println("  Admin Panel")
		c.println(rule)
		c.println("[1] View All Tourists")
		c.println("[2] Update Tourist Info")
		c.println("[3] Count All Tourists")
		c.println("[4] Delete Tourist")
		c.println("[5] View Payment Methods")
		c.println("[6] Reset Tables")
		c.println("[7] Exit")

		choice, err := c.choose("\nEnter your choice: ", "1", "2", "3", "4", "5", "6", "7")
		if err != nil {
			return err
		}
		if choice == "7" {
			c.println("Goodbye!")
			return nil
		}
		if err := c.svc.Admin.Authorize(token); err != nil {
			c.println("Your admin session has expired. Please log in again.")
			return nil
		}

		switch choice {
		case "1":
			err = c.viewDirectory(ctx)
		case "2":
			err = c.withVisitorID(ctx, "Enter Tourist ID to update: ", c.editVisitor)
		case "3":
			err = c.countVisitors(ctx)
		case "4":
			err = c.withVisitorID(ctx, "Enter Tourist ID to delete: ", c.deleteVisitor)
		case "5":
			err = c.viewReport(ctx)
		case "6":
			err = c.resetTables(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) withVisitorID(ctx context.Context, label string, fn func(context.Context, int64) error) error {
	answer, err := c.prompt(label)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil || id < 1 {
		c.println("Invalid Tourist ID.")
		return nil
	}
	return fn(ctx, id)
}

func (c *Console) viewDirectory(ctx context.Context) error {
	dir, err := c.svc.Visitors.Directory(ctx)
	if err != nil {
		return c.report(err)
	}
	c.markdown(c.r.DirectoryMarkdown(dir))
	return nil
}

func (c *Console) countVisitors(ctx context.Context) error {
	n, err := c.svc.Visitors.Count(ctx)
	if err != nil {
		return c.report(err)
	}
	c.printf("  Total Number of Tourists: %d\n", n)
	return nil
}

func (c *Console) deleteVisitor(ctx context.Context, id int64) error {
	if err := c.svc.Visitors.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.println("Tourist not found.")
			return nil
		}
		return c.report(err)
	}
	c.println("Tourist deleted successfully.")
	return nil
}

func (c *Console) viewReport(ctx context.Context) error {
	rows, err := c.svc.Payments.Report(ctx)
	if err != nil {
		return c.report(err)
	}
	c.markdown(c.r.ReportMarkdown(rows))
	return nil
}

func (c *Console) resetTables(ctx context.Context) error {
	c.println("Resetting tables... This will delete all data and reset IDs.")
	confirmation, err := c.prompt("Are you sure? Type 'yes' to confirm: ")
	if err != nil {
		return err
	}
	out, err := c.svc.Admin.Reset(ctx, confirmation)
	if err != nil {
		return c.report(err)
	}
	if out == service.OutcomeCancelled {
		c.println("Reset canceled. No changes made.")
		return nil
	}
	c.println("Tables cleared and IDs reset successfully!")
	return nil
}
