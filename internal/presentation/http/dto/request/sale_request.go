package request

import "github.com/shopspring/decimal"

// OpenSaleItemRequest is one cart line. Price accepts a JSON number or string.
type OpenSaleItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OpenSaleRequest represents the open sale request body
type OpenSaleRequest struct {
	Items []OpenSaleItemRequest `json:"items"`
}

// CloseSaleRequest maps payment method to tendered amount,
// e.g. {"payments": {"cash": 12.5, "pix": 7.5}}
type CloseSaleRequest struct {
	Payments map[string]decimal.Decimal `json:"payments"`
}

// ProductFilterRequest represents product list query parameters
type ProductFilterRequest struct {
	Search string `form:"search"`
}

// MonthFilterRequest selects a calendar month as YYYY-MM
type MonthFilterRequest struct {
	Month string `form:"month"`
}
