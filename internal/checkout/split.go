package checkout

import (
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Split holds the amount tendered per payment method. The zero value has
// every method at zero. Like Cart, methods return an updated copy.
type Split struct {
	Cash   decimal.Decimal `json:"cash"`
	Pix    decimal.Decimal `json:"pix"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

func (s *Split) field(m enum.PaymentMethod) *decimal.Decimal {
	switch m {
	case enum.PaymentMethodCash:
		return &s.Cash
	case enum.PaymentMethodPix:
		return &s.Pix
	case enum.PaymentMethodDebit:
		return &s.Debit
	case enum.PaymentMethodCredit:
		return &s.Credit
	}
	return nil
}

// Amount returns the value entered for m
func (s Split) Amount(m enum.PaymentMethod) decimal.Decimal {
	if f := s.field(m); f != nil {
		return *f
	}
	return decimal.Zero
}

// Set overwrites one method's amount, rounded to cents. Negative input
// becomes zero and other methods are untouched.
func (s Split) Set(m enum.PaymentMethod, amount decimal.Decimal) Split {
	if f := s.field(m); f != nil {
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		*f = amount.Round(2)
	}
	return s
}

// Select puts the whole unpaid remainder of total on m and zeroes the
// other methods. Nothing changes when there is no remainder.
func (s Split) Select(m enum.PaymentMethod, total decimal.Decimal) Split {
	remaining := s.Remaining(total)
	if !remaining.IsPositive() || s.field(m) == nil {
		return s
	}
	return Split{}.Set(m, remaining)
}

// Paid sums every method
func (s Split) Paid() decimal.Decimal {
	return s.Cash.Add(s.Pix).Add(s.Debit).Add(s.Credit)
}

// Remaining is total minus Paid. Negative means overpaid.
func (s Split) Remaining(total decimal.Decimal) decimal.Decimal {
	return total.Sub(s.Paid())
}

// CanConfirm reports whether anything was tendered
func (s Split) CanConfirm() bool {
	return s.Paid().IsPositive()
}

// Payments returns the close-sale body, one entry per method
func (s Split) Payments() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(enum.PaymentMethods))
	for _, m := range enum.PaymentMethods {
		out[m.String()] = s.Amount(m)
	}
	return out
}
