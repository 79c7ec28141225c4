package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentMethod
	}{
		{"CreditCard", MethodCreditCard},
		{"credit card", MethodCreditCard},
		{"CREDIT_CARD", MethodCreditCard},
		{"1", MethodCreditCard},
		{" cash ", MethodCash},
		{"2", MethodCash},
		{"PayPal", MethodPayPal},
		{"pay-pal", MethodPayPal},
		{"3", MethodPayPal},
	}
	for _, tt := range tests {
		got, err := ParsePaymentMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "4", "bitcoin", "cheque"} {
		_, err := ParsePaymentMethod(bad)
		assert.ErrorIs(t, err, ErrUnknownMethod, bad)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"500", 50000},
		{"500.00", 50000},
		{"0", 0},
		{"12.345", 1235},
		{"1,250.5", 125050},
		{" 99.99 ", 9999},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "abc", "-1", "-0.01", "1e20"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$500.00", FormatCents(50000, "USD"))
	assert.Equal(t, "12.50 XYZ", FormatCents(1250, "XYZ"))
}

func TestPaymentAmount(t *testing.T) {
	p := Payment{AmountCents: 1999}
	assert.Equal(t, "19.99", p.Amount().StringFixed(2))
}
