package console

import (
	"context"
	"errors"
	"strconv"

	"github.com/iliyamo/galeragate-ledger/internal/model"
	"github.com/iliyamo/galeragate-ledger/internal/service"
)

const pierNotice = `Upon arriving at Puerto Galera's Balatero Pier
make sure to pay the Environmental User Fee of 120 pesos per tourist.
From there, trikes are readily available to transport you to your resort.`

func (c *Console) tourist(ctx context.Context) error {
	id, err := c.register(ctx)
	if err != nil {
		return err
	}
	for {
		c.println(rule)
		c.println("[1] Proceed to Selection")
		c.println("[2] Edit My Personal Information")
		c.println("[3] Back to Main Menu")
		choice, err := c.choose("Enter your choice: ", "1", "2", "3")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = c.selectionMenu(ctx, service.NewSession(id, c.svc.Selections, c.svc.Payments))
		case "2":
			err = c.editVisitor(ctx, id)
		case "3":
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) register(ctx context.Context) (int64, error) {
	c.println("  Welcome, dear Tourist!")
	c.println("  Get ready to immerse yourself in the beauty of Puerto Galera.")
	c.println(rule)
	c.println("Please provide your personal information below to proceed.")

	for {
		var in model.VisitorInput
		var err error
		if in.Name, err = c.prompt("Name: "); err != nil {
			return 0, err
		}
		for {
			if in.Age, err = c.prompt("Age: "); err != nil {
				return 0, err
			}
			if service.ValidAge(in.Age) {
				break
			}
			c.println("Age must be a positive number. Please enter a valid age.")
		}
		fields := []struct {
			label string
			dst   *string
		}{
			{"Sex (Male/Female): ", &in.Sex},
			{"Nationality: ", &in.Nationality},
			{"Contact Number: ", &in.ContactNumber},
			{"Entry Date (YYYY-MM-DD): ", &in.EntryDate},
			{"Exit Date (YYYY-MM-DD): ", &in.ExitDate},
		}
		for _, f := range fields {
			if *f.dst, err = c.prompt(f.label); err != nil {
				return 0, err
			}
		}

		id, err := c.svc.Visitors.Register(ctx, in)
		if errors.Is(err, service.ErrValidation) {
			c.println(userMessage(err))
			continue
		}
		if err != nil {
			return 0, c.report(err)
		}
		c.printf("\nYour Tourist ID is: %s\n", VisitorID(id))
		return id, nil
	}
}

// editVisitor prompts for every field showing the current value; an empty
// answer keeps it.
func (c *Console) editVisitor(ctx context.Context, id int64) error {
	v, err := c.svc.Visitors.Get(ctx, id)
	if err != nil {
		return c.report(err)
	}
	c.println("Leave a field empty to keep the current value.")
	var in model.VisitorInput
	fields := []struct {
		label string
		cur   string
		dst   *string
	}{
		{"Name", v.Name, &in.Name},
		{"Age", strconv.Itoa(v.Age), &in.Age},
		{"Sex", v.Sex, &in.Sex},
		{"Nationality", v.Nationality, &in.Nationality},
		{"Contact Number", v.ContactNumber, &in.ContactNumber},
		{"Entry Date", v.EntryDate, &in.EntryDate},
		{"Exit Date", v.ExitDate, &in.ExitDate},
	}
	for _, f := range fields {
		if *f.dst, err = c.prompt(f.label + " [" + f.cur + "]: "); err != nil {
			return err
		}
	}
	if _, err := c.svc.Visitors.Update(ctx, id, in); err != nil {
		return c.report(err)
	}
	c.println("Information updated successfully!")
	return nil
}

func (c *Console) selectionMenu(ctx context.Context, sess *service.Session) error {
	categories := c.svc.Selections.Catalog().Categories()
	n := len(categories)
	overall, remove, back := strconv.Itoa(n+1), strconv.Itoa(n+2), strconv.Itoa(n+3)
	valid := []string{overall, remove, back}
	for i := range categories {
		valid = append(valid, strconv.Itoa(i+1))
	}

	for sess.State() != service.Exited {
		c.println(rule)
		c.println("  Categories: Choose your options below!")
		c.println(rule)
		for i, name := range categories {
			c.printf("[%d] %s\n", i+1, name)
		}
		c.printf("[%s] Overall Selection\n", overall)
		c.printf("[%s] Delete Selection\n", remove)
		c.printf("[%s] Back to Main Menu\n", back)

		choice, err := c.choose("Enter your choice: ", valid...)
		if err != nil {
			return err
		}
		switch choice {
		case overall:
			err = c.review(ctx, sess)
		case remove:
			err = c.deleteSelection(ctx, sess)
		case back:
			err = sess.Exit()
		default:
			i, _ := strconv.Atoi(choice)
			err = c.pick(ctx, sess, categories[i-1])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) pick(ctx context.Context, sess *service.Session, category string) error {
	offerings, err := sess.ChooseCategory(category)
	if err != nil {
		return c.report(err)
	}
	c.printf("\n%s Options\n", category)
	for i, o := range offerings {
		c.printf("[%d] %s\n", i+1, o)
	}
	answer, err := c.prompt("Enter your choice: ")
	if err != nil {
		return err
	}
	index, _ := strconv.Atoi(answer)
	sel, err := sess.Pick(ctx, index)
	if err != nil {
		if sess.State() == service.ChoosingOffering {
			_ = sess.Back()
		}
		return c.report(err)
	}
	c.printf("\nAdded: %s under %s\n", sel.Offering, sel.Category)
	return nil
}

func (c *Console) review(ctx context.Context, sess *service.Session) error {
	list, err := sess.Review(ctx)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.println("No selections made yet. Please make a selection first!")
			return nil
		}
		return c.report(err)
	}
	cat := c.svc.Selections.Catalog()
	c.println("\nOverall Selections")
	c.println(rule)
	for _, s := range list {
		idx, _ := cat.IndexOf(s.Category, s.Offering)
		c.printf("[%d] %s: %s\n", idx, s.Category, s.Offering)
	}
	c.println("[1] Proceed to Reservation")
	c.println("[2] Exit")
	choice, err := c.choose("Enter your choice: ", "1", "2")
	if err != nil {
		return err
	}
	if choice == "2" {
		return sess.Back()
	}
	if err := sess.BeginPayment(); err != nil {
		return c.report(err)
	}
	return c.pay(ctx, sess)
}

func (c *Console) pay(ctx context.Context, sess *service.Session) error {
	c.println("Proceeding to payment...")
	c.println(pierNotice)
	c.println(rule)
	c.println("Payment Options")
	for i, m := range model.PaymentMethods {
		c.printf("%d. %s\n", i+1, m)
	}
	method, err := c.prompt("Choose a payment method: ")
	if err != nil {
		return err
	}
	if _, err := model.ParsePaymentMethod(method); err != nil {
		c.println("Invalid payment method selected.")
		return sess.Back()
	}
	amount, err := c.prompt("Enter the total amount paid: ")
	if err != nil {
		return err
	}
	date, err := c.prompt("Enter the payment date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	receipt, err := sess.Pay(ctx, method, amount, date)
	if err != nil {
		_ = sess.Back()
		return c.report(err)
	}
	c.println("\nPayment completed successfully!")
	c.println("\nGenerating Receipt...")
	c.markdown(c.r.ReceiptMarkdown(receipt))
	return nil
}

func (c *Console) deleteSelection(ctx context.Context, sess *service.Session) error {
	list, err := sess.BeginDelete(ctx)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.println("No selections to delete.")
			return nil
		}
		return c.report(err)
	}
	c.println("\nYour Selections to Delete")
	c.println(rule)
	for i, s := range list {
		c.printf("[%d] %s: %s\n", i+1, s.Category, s.Offering)
	}
	answer, err := c.prompt("Enter the number of the selection to delete: ")
	if err != nil {
		return err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil || n < 1 || n > len(list) {
		c.println("Invalid selection number.")
		return sess.Back()
	}
	target := list[n-1]
	confirmation, err := c.prompt("Are you sure you want to delete this selection: " + target.Offering + "?\nType 'yes' to confirm: ")
	if err != nil {
		return err
	}
	out, err := sess.Delete(ctx, target.Category, target.Offering, confirmation)
	if err != nil {
		_ = sess.Back()
		return c.report(err)
	}
	if out == service.OutcomeCancelled {
		c.println("Deletion cancelled. No changes were made.")
		return nil
	}
	c.println("Selection deleted successfully.")
	return nil
}
