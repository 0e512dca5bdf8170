package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleMarshalJSON(t *testing.T) {
	productID := uuid.New()
	sale := Sale{
		ID:          uuid.New(),
		SaleNumber:  3,
		BusinessDay: "2024-05-10",
		Status:      enum.SaleStatusClosed,
		Date:        time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		Total:       decimal.RequireFromString("20.00"),
		Items: []SaleItem{
			{ProductID: productID, Quantity: 2, Price: decimal.RequireFromString("10")},
		},
	}

	data, err := json.Marshal(sale)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(3), got["saleNumber"])
	assert.Equal(t, "CLOSED", got["status"])
	assert.Equal(t, 20.0, got["total"])
	assert.NotContains(t, got, "BusinessDay")
	assert.Equal(t, []interface{}{}, got["payments"])

	items := got["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, productID.String(), item["productId"])
	assert.Equal(t, 10.0, item["price"])
	assert.NotContains(t, item, "product")
}

func TestProductMarshalJSON(t *testing.T) {
	p := Product{ID: uuid.New(), Name: "Refrigerante Lata", Price: decimal.RequireFromString("4.50")}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+p.ID.String()+`","name":"Refrigerante Lata","price":4.5}`, string(data))
}

func TestSaleItemsTotal(t *testing.T) {
	sale := Sale{Items: []SaleItem{
		{Quantity: 2, Price: decimal.RequireFromString("20")},
		{Quantity: 3, Price: decimal.RequireFromString("4.5")},
	}}
	assert.True(t, decimal.RequireFromString("53.5").Equal(sale.ItemsTotal()))
}

func TestIdempotencyKeyIsExpired(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	key := IdempotencyKey{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, key.IsExpired(now))
	assert.True(t, key.IsExpired(now.Add(2*time.Hour)))
}

func TestProductJSONRoundTrip(t *testing.T) {
	in := Product{ID: uuid.New(), Name: "Marmitex Médio", Price: decimal.RequireFromString("18.90")}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Product
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Name, out.Name)
	assert.True(t, in.Price.Equal(out.Price))
}
