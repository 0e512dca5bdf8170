// Package checkout holds the terminal-side cart, payment split and the
// register that turns them into a closed sale.
package checkout

import (
	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/shopspring/decimal"
)

// CartLine is one product in the cart with its captured unit price
type CartLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Total is quantity x price
func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an insertion-ordered list of lines. Methods never mutate the
// receiver; they return the updated cart.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// Add puts one unit of p in the cart, appending a new line the first time
func (c Cart) Add(p posclient.Product) Cart {
	lines := c.Items()
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity++
			return Cart{Lines: lines}
		}
	}
	return Cart{Lines: append(lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})}
}

// Remove takes one unit of productID out, dropping the line at zero.
// Unknown ids leave the cart unchanged.
func (c Cart) Remove(productID uuid.UUID) Cart {
	lines := make([]CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.ProductID == productID {
			if l.Quantity <= 1 {
				continue
			}
			l.Quantity--
		}
		lines = append(lines, l)
	}
	return Cart{Lines: lines}
}

// Items returns a copy of the lines in insertion order
func (c Cart) Items() []CartLine {
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}

// Total sums the line totals
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// OpenItems converts the cart to an open-sale request body
func (c Cart) OpenItems() []posclient.OpenItem {
	items := make([]posclient.OpenItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, posclient.OpenItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	return items
}
