package checkout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/stretchr/testify/assert"
)

func TestReceipt(t *testing.T) {
	cart := Cart{}.Add(marmitex).Add(marmitex).Add(lata)
	sale := &posclient.Sale{
		ID:         uuid.New(),
		SaleNumber: 7,
		Status:     "CLOSED",
		Date:       time.Date(2024, time.May, 10, 12, 30, 0, 0, time.UTC),
		Total:      d("44.50"),
		Items: []posclient.SaleItem{
			{ProductID: marmitex.ID, Quantity: 2, Price: marmitex.Price},
			{ProductID: lata.ID, Quantity: 1, Price: lata.Price, Product: &posclient.Product{Name: "Lata 350ml"}},
		},
		Payments: []posclient.Payment{
			{Method: "cash", Amount: d("40")},
			{Method: "pix", Amount: d("4.50")},
		},
	}

	out := string(Receipt("ByteChef", sale, cart, 32))

	assert.Contains(t, out, "ByteChef\n")
	assert.Contains(t, out, "Venda:")
	assert.Contains(t, out, "#7\n")
	assert.Contains(t, out, "10/05/2024 12:30\n")
	assert.Contains(t, out, "2x Marmitex Grande")
	assert.Contains(t, out, "R$ 40,00\n")
	assert.Contains(t, out, "1x Lata 350ml")
	assert.Contains(t, out, "Dinheiro:")
	assert.Contains(t, out, "Pix:")
	assert.Contains(t, out, "R$ 44,50\n")
}
