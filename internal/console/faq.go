package console

import "strconv"

var faqs = []struct{ q, a string }{
	{"How do I register as a tourist?",
		"Choose 'Tourist' from the main menu and provide your personal information\n(Name, Age, Sex, Nationality, etc.). Once you submit, you receive a unique\nTourist ID for your records."},
	{"What is the Tourist ID and how is it generated?",
		"The Tourist ID is a unique identifier assigned to each tourist. It is\ngenerated automatically when you register, so no two tourists share an ID."},
	{"How do I make selections for resorts, restaurants, and activities?",
		"Once registered, choose 'Proceed to Selection' and pick from Resorts,\nRestaurants, Activities and Places. Your choices are saved to your profile."},
	{"Can I edit my personal information after registration?",
		"Yes. Choose 'Edit My Personal Information' and update any detail.\nLeaving a field empty keeps its current value."},
	{"How do I delete my selections?",
		"Open the category menu and choose 'Delete Selection'. You will be asked\nto type 'yes' before anything is removed."},
	{"How can I view my reservation and selections?",
		"Choose 'Overall Selection' from the category menu. From there you can\nproceed to payment and receive your receipt."},
	{"What should I do if I forgot my Tourist ID?",
		"Contact the admin to retrieve your ID, or check the receipt you were\ngiven after payment."},
}

func (c *Console) faq() error {
	for {
		c.println("  Frequently Asked Questions (FAQ)")
		c.println(rule)
		valid := make([]string, 0, len(faqs)+1)
		for i, f := range faqs {
			c.printf("[%d] %s\n", i+1, f.q)
			valid = append(valid, strconv.Itoa(i+1))
		}
		back := strconv.Itoa(len(faqs) + 1)
		valid = append(valid, back)
		c.printf("[%s] Back to Main Menu\n", back)
		c.println(rule)

		choice, err := c.choose("Enter the number of your question: ", valid...)
		if err != nil {
			return err
		}
		if choice == back {
			c.println("\nReturning to Main Menu...")
			return nil
		}
		n, _ := strconv.Atoi(choice)
		c.printf("\n%s\n%s\n%s\n", faqs[n-1].q, rule, faqs[n-1].a)

		more, err := c.prompt("\nWould you like to see more FAQs? (y/n): ")
		if err != nil {
			return err
		}
		if more != "y" && more != "Y" {
			c.println("Thank you for using the FAQ service!")
			return nil
		}
	}
}
