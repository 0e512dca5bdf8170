package checkout

import (
	"fmt"

	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/sangkips/bytechef-api/pkg/printer"
	"github.com/sangkips/bytechef-api/pkg/report"
	"github.com/shopspring/decimal"
)

// Receipt renders a closed sale as an ESC/POS document. Item names come
// from the cart when the sale carries no product details.
func Receipt(storeName string, sale *posclient.Sale, cart Cart, width int) []byte {
	names := make(map[string]string, len(cart.Lines))
	for _, l := range cart.Lines {
		names[l.ProductID.String()] = l.Name
	}

	doc := printer.NewDocument(width)
	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.FontDouble).
		Line(storeName).
		Size(printer.FontNormal).
		Bold(false).
		Align(printer.AlignLeft).
		Rule('-')

	doc.Columns("Venda:", fmt.Sprintf("#%d", sale.SaleNumber)).
		Columns("Data:", sale.Date.Format("02/01/2006 15:04")).
		Rule('-')

	for _, item := range sale.Items {
		name := names[item.ProductID.String()]
		if item.Product != nil {
			name = item.Product.Name
		}
		if name == "" {
			name = "Produto"
		}
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		doc.Columns(fmt.Sprintf("%dx %s", item.Quantity, name), report.FormatBRL(line))
	}

	doc.Rule('-')
	for _, p := range sale.Payments {
		label := p.Method
		if m, err := enum.ParsePaymentMethod(p.Method); err == nil {
			label = m.Label()
		}
		doc.Columns(label+":", report.FormatBRL(p.Amount))
	}

	doc.Bold(true).
		Columns("TOTAL:", report.FormatBRL(sale.Total)).
		Bold(false).
		Align(printer.AlignCenter).
		Feed(1).
		Line("Obrigado pela preferência!").
		Align(printer.AlignLeft).
		Feed(3).
		Cut()

	return doc.Bytes()
}
