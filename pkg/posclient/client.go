// Package posclient is a typed HTTP client for the point-of-sale API.
package posclient

import (
	"context"
	"fmt"
	"errors"
	"mime"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"resty.dev/v3"
)

// IdempotencyKeyHeader is sent when a caller supplies a retry key
const IdempotencyKeyHeader = "Idempotency-Key"

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pos api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("pos api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the POS API
type Client struct {
	http *resty.Client
}

// New creates a client for baseURL. A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	return &Client{http: rc}
}

// Close releases the underlying transport
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) request(ctx context.Context, idempotencyKey string) *resty.Request {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if idempotencyKey != "" {
		req.SetHeader(IdempotencyKeyHeader, idempotencyKey)
	}
	return req
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if res.IsSuccess() {
		return nil
	}
	apiErr := &APIError{StatusCode: res.StatusCode()}
	if body, ok := res.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.Error
	}
	return apiErr
}

// Products lists the catalog, optionally filtered by search
func (c *Client) Products(ctx context.Context, search string) ([]Product, error) {
	var out []Product
	req := c.request(ctx, "").SetResult(&out)
	if search != "" {
		req.SetQueryParam("search", search)
	}
	if err := check(req.Get("/products")); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenSale creates an OPEN sale with items
func (c *Client) OpenSale(ctx context.Context, items []OpenItem, idempotencyKey string) (*Sale, error) {
	var out Sale
	res, err := c.request(ctx, idempotencyKey).
		SetBody(map[string]interface{}{"items": items}).
		SetResult(&out).
		Post("/sales/open")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseSale records payments keyed by method and closes the sale
func (c *Client) CloseSale(ctx context.Context, id uuid.UUID, payments map[string]decimal.Decimal, idempotencyKey string) (*Sale, error) {
	var out Sale
	res, err := c.request(ctx, idempotencyKey).
		SetPathParam("id", id.String()).
		SetBody(map[string]interface{}{"payments": payments}).
		SetResult(&out).
		Post("/sales/{id}/close")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sale fetches one sale
func (c *Client) Sale(ctx context.Context, id uuid.UUID) (*Sale, error) {
	var out Sale
	res, err := c.request(ctx, "").
		SetPathParam("id", id.String()).
		SetResult(&out).
		Get("/sales/{id}")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailySales lists today's sales oldest first
func (c *Client) DailySales(ctx context.Context) ([]Sale, error) {
	var out []Sale
	if err := check(c.request(ctx, "").SetResult(&out).Get("/sales/daily")); err != nil {
		return nil, err
	}
	return out, nil
}

// SendToMonthly folds today's closed sales into the monthly ledger
func (c *Client) SendToMonthly(ctx context.Context, idempotencyKey string) (*Rollup, error) {
	var out Rollup
	res, err := c.request(ctx, idempotencyKey).SetResult(&out).Post("/sales/daily/sendToMonthly")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurgeDaily deletes today's sales and returns the server message
func (c *Client) PurgeDaily(ctx context.Context) (string, error) {
	var out messageBody
	if err := check(c.request(ctx, "").SetResult(&out).Delete("/sales/daily")); err != nil {
		return "", err
	}
	return out.Message, nil
}

// MonthlySales lists the monthly ledger ascending by day
func (c *Client) MonthlySales(ctx context.Context) ([]MonthlySale, error) {
	var out []MonthlySale
	if err := check(c.request(ctx, "").SetResult(&out).Get("/sales/monthly")); err != nil {
		return nil, err
	}
	return out, nil
}

// DailyReport fetches today's summary
func (c *Client) DailyReport(ctx context.Context) (*DailyReport, error) {
	var out DailyReport
	if err := check(c.request(ctx, "").SetResult(&out).Get("/reports/daily")); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthlyReport fetches the summary of month ("YYYY-MM", empty for the current one)
func (c *Client) MonthlyReport(ctx context.Context, month string) (*MonthlyReport, error) {
	var out MonthlyReport
	req := c.request(ctx, "").SetResult(&out)
	if month != "" {
		req.SetQueryParam("month", month)
	}
	if err := check(req.Get("/reports/monthly")); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportMonthly downloads the month's XLSX workbook and its suggested file name
func (c *Client) ExportMonthly(ctx context.Context, month string) ([]byte, string, error) {
	req := c.request(ctx, "")
	if month != "" {
		req.SetQueryParam("month", month)
	}
	res, err := req.Get("/reports/monthly/export")
	if err := check(res, err); err != nil {
		return nil, "", err
	}

	filename := "vendas-mensais.xlsx"
	if _, params, err := mime.ParseMediaType(res.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}
	return res.Bytes(), filename, nil
}

// StatusCode extracts the HTTP status from an APIError, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
