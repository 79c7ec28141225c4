package model

import (
	"errors"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// PaymentMethod is one of the fixed ways a visitor can pay.  The value is
// what gets stored in payments.method.
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "Credit Card"
	MethodCash       PaymentMethod = "Cash"
	MethodPayPal     PaymentMethod = "PayPal"
)

// PaymentMethods lists the methods in menu order (1, 2, 3).
var PaymentMethods = []PaymentMethod{MethodCreditCard, MethodCash, MethodPayPal}

var (
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrInvalidAmount = errors.New("amount must be a non-negative decimal")
)

// maxAmount keeps amount_cents well inside a signed 64-bit column.
var maxAmount = decimal.New(1, 15)

// ParsePaymentMethod accepts a method name regardless of case, spaces,
// dashes or underscores ("credit card", "CreditCard", "credit_card") or its
// 1-based menu number.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	switch norm {
	case "1", "creditcard", "card":
		return MethodCreditCard, nil
	case "2", "cash":
		return MethodCash, nil
	case "3", "paypal":
		return MethodPayPal, nil
	}
	return "", ErrUnknownMethod
}

// ParseAmount parses a non-negative decimal amount in major units and
// returns it in minor units (cents), rounding half away from zero.
// Thousands separators are ignored.
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.IsNegative() || d.GreaterThanOrEqual(maxAmount) {
		return 0, ErrInvalidAmount
	}
	return d.Round(2).Shift(2).IntPart(), nil
}

// FormatCents renders minor units in the given currency, e.g. "$500.00".
// Unknown currency codes fall back to "500.00 XYZ".
func FormatCents(cents int64, currency string) string {
	if money.GetCurrency(currency) == nil {
		return decimal.New(cents, -2).StringFixed(2) + " " + currency
	}
	return money.New(cents, currency).Display()
}

// Payment mirrors the `payments` table.  Nothing prevents several payments
// for one visitor; the most recent one is the one shown on a receipt.
type Payment struct {
	ID          int64         `db:"id" json:"id"`                     // payments.id
	VisitorID   int64         `db:"visitor_id" json:"visitor_id"`     // payments.visitor_id (not enforced)
	Method      PaymentMethod `db:"method" json:"method"`             // payments.method
	AmountCents int64         `db:"amount_cents" json:"amount_cents"` // payments.amount_cents
	Date        string        `db:"paid_on" json:"date"`              // payments.paid_on, verbatim text
}

// Amount returns the payment amount in major units.
func (p Payment) Amount() decimal.Decimal { return decimal.New(p.AmountCents, -2) }

// PaymentReportRow is one payment joined with its visitor's name and the
// totals of every payment sharing its method.
type PaymentReportRow struct {
	Payment
	VisitorName      string `json:"visitor_name"`
	MethodTotalCents int64  `json:"method_total_cents"`
	MethodCount      int64  `json:"method_count"`
}
