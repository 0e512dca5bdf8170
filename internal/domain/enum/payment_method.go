package enum

import (
	"fmt"
	"strings"
)

// PaymentMethod tags a tendered amount
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodCredit PaymentMethod = "credit"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodPix,
	PaymentMethodDebit,
	PaymentMethodCredit,
}

// Portuguese keys sent by the browser client.
var paymentMethodAliases = map[string]PaymentMethod{
	"dinheiro": PaymentMethodCash,
	"debito":   PaymentMethodDebit,
	"débito":   PaymentMethodDebit,
	"credito":  PaymentMethodCredit,
	"crédito":  PaymentMethodCredit,
}

// ParsePaymentMethod normalizes a payment key, accepting the Portuguese aliases.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, m := range PaymentMethods {
		if string(m) == key {
			return m, nil
		}
	}
	if m, ok := paymentMethodAliases[key]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", raw)
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label is the name shown to the operator.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Dinheiro"
	case PaymentMethodPix:
		return "Pix"
	case PaymentMethodDebit:
		return "Débito"
	case PaymentMethodCredit:
		return "Crédito"
	}
	return string(m)
}
