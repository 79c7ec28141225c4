package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/iliyamo/galeragate-ledger/internal/model"
)

// Renderer turns the markdown documents below into terminal output.  With
// no glamour renderer attached the markdown is printed as is, which is
// what tests and piped output use.
type Renderer struct {
	tr       *glamour.TermRenderer
	currency string
}

// NewRenderer returns a Renderer formatting amounts in currency.  styled
// enables glamour rendering.
func NewRenderer(currency string, styled bool) (*Renderer, error) {
	r := &Renderer{currency: currency}
	if !styled {
		return r, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil, fmt.Errorf("glamour.NewTermRenderer -> %w", err)
	}
	r.tr = tr
	return r, nil
}

// Render returns md styled for the terminal, or md unchanged when styling
// is off or fails.
func (r *Renderer) Render(md string) string {
	if r == nil || r.tr == nil {
		return md
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (r *Renderer) money(cents int64) string { return model.FormatCents(cents, r.currency) }

// VisitorID formats an id the way it is shown to tourists, e.g. 0007.
func VisitorID(id int64) string { return fmt.Sprintf("%04d", id) }

// ReceiptMarkdown renders a receipt.
func (r *Renderer) ReceiptMarkdown(rc model.Receipt) string {
	var b strings.Builder
	v := rc.Visitor
	b.WriteString("# Tourist Receipt\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Tourist ID | %s |\n", VisitorID(v.ID))
	fmt.Fprintf(&b, "| Name | %s |\n", cell(v.Name))
	fmt.Fprintf(&b, "| Age | %d |\n", v.Age)
	fmt.Fprintf(&b, "| Sex | %s |\n", cell(v.Sex))
	fmt.Fprintf(&b, "| Nationality | %s |\n", cell(v.Nationality))
	fmt.Fprintf(&b, "| Contact | %s |\n", cell(v.ContactNumber))
	fmt.Fprintf(&b, "| Entry Date | %s |\n", cell(v.EntryDate))
	fmt.Fprintf(&b, "| Exit Date | %s |\n", cell(v.ExitDate))

	b.WriteString("\n## Selections\n\n")
	if len(rc.Selections) == 0 {
		b.WriteString("No selections made yet.\n")
	}
	for _, s := range rc.Selections {
		fmt.Fprintf(&b, "- **%s:** %s\n", s.Category, s.Offering)
	}

	b.WriteString("\n## Payment Details\n\n")
	if p := rc.Payment; p != nil {
		fmt.Fprintf(&b, "- **Payment Method:** %s\n", p.Method)
		fmt.Fprintf(&b, "- **Amount Paid:** %s\n", r.money(p.AmountCents))
		fmt.Fprintf(&b, "- **Payment Date:** %s\n", p.Date)
	} else {
		b.WriteString("No payment information found.\n")
	}
	b.WriteString("\nThank you for your reservation! We hope you have a great time at Puerto Galera!\n")
	return b.String()
}

// ReportMarkdown renders every payment with the totals of its method,
// followed by one summary line per method in order of first appearance.
func (r *Renderer) ReportMarkdown(rows []model.PaymentReportRow) string {
	var b strings.Builder
	b.WriteString("# All Payment Records\n\n")
	if len(rows) == 0 {
		b.WriteString("No payments recorded.\n")
		return b.String()
	}
	b.WriteString("| Payment ID | Tourist | Amount | Method | Date |\n|---|---|---|---|---|\n")
	type total struct {
		cents int64
		count int64
	}
	var order []model.PaymentMethod
	totals := map[model.PaymentMethod]total{}
	for _, row := range rows {
		name := row.VisitorName
		if name == "" {
			name = "(deleted tourist)"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			row.ID, cell(name), r.money(row.AmountCents), row.Method, cell(row.Date))
		if _, ok := totals[row.Method]; !ok {
			order = append(order, row.Method)
		}
		totals[row.Method] = total{cents: row.MethodTotalCents, count: row.MethodCount}
	}
	b.WriteString("\n## Totals per method\n\n")
	for _, m := range order {
		t := totals[m]
		fmt.Fprintf(&b, "- **%s:** %s (%d transactions)\n", m, r.money(t.cents), t.count)
	}
	return b.String()
}

// DirectoryMarkdown renders every visitor with their selections.
func (r *Renderer) DirectoryMarkdown(dir []model.VisitorSummary) string {
	var b strings.Builder
	b.WriteString("# All Tourists\n\n")
	if len(dir) == 0 {
		b.WriteString("No tourists registered.\n")
	}
	for _, v := range dir {
		fmt.Fprintf(&b, "## Tourist %s: %s\n\n", VisitorID(v.ID), v.Name)
		fmt.Fprintf(&b, "- Age: %d\n- Nationality: %s\n- Contact Number: %s\n- Entry Date: %s\n- Exit Date: %s\n",
			v.Age, v.Nationality, v.ContactNumber, v.EntryDate, v.ExitDate)
		if len(v.Selections) > 0 {
			b.WriteString("\n**Selections:**\n\n")
			for _, s := range v.Selections {
				fmt.Fprintf(&b, "- %s: %s\n", s.Category, s.Offering)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
