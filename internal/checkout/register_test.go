package checkout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/sangkips/bytechef-api/internal/testutil/apitest"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newLiveRegister(t *testing.T) (*Register, *posclient.Client) {
	t.Helper()
	api := apitest.New(t)
	srv := httptest.NewServer(api.Router)
	t.Cleanup(srv.Close)

	client := posclient.New(srv.URL, 5*time.Second)
	t.Cleanup(func() { _ = client.Close() })
	return NewRegister(client, zaptest.NewLogger(t)), client
}

func TestRegisterConfirmResetsOnSuccess(t *testing.T) {
	reg, client := newLiveRegister(t)
	ctx := context.Background()

	products, err := client.Products(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, products)

	reg.Add(products[0])
	reg.Add(products[0])
	reg.SetPayment(enum.PaymentMethodCash, d("15"))
	split := reg.SelectPayment(enum.PaymentMethodPix)
	assert.True(t, split.Pix.Equal(d("25")))

	sale, err := reg.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", sale.Status)
	assert.True(t, sale.Total.Equal(d("25")))
	assert.Equal(t, 1, sale.SaleNumber)

	assert.True(t, reg.Cart().IsEmpty())
	assert.False(t, reg.Split().CanConfirm())

	daily, err := client.DailySales(ctx)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, sale.ID, daily[0].ID)
}

func TestRegisterRejectsEmptyCartAndNoPayment(t *testing.T) {
	reg := NewRegister(&stubAPI{}, nil)
	ctx := context.Background()

	_, err := reg.Confirm(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)

	reg.Add(marmitex)
	_, err = reg.Confirm(ctx)
	assert.ErrorIs(t, err, ErrNoPayment)
}

func TestRegisterKeepsCartOnFailure(t *testing.T) {
	api := &stubAPI{closeErr: &posclient.APIError{StatusCode: http.StatusInternalServerError, Message: "Erro ao fechar venda"}}
	reg := NewRegister(api, zaptest.NewLogger(t))
	reg.Add(marmitex)
	reg.SelectPayment(enum.PaymentMethodCash)

	_, err := reg.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, posclient.StatusCode(err))

	assert.Len(t, reg.Cart().Items(), 1)
	assert.True(t, reg.Split().Cash.Equal(d("20")))
	assert.False(t, reg.Busy())
	require.NotNil(t, reg.Pending())

	api.closeErr = nil
	sale, err := reg.Confirm(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sale)
	assert.True(t, reg.Cart().IsEmpty())
	assert.Nil(t, reg.Pending())

	// the retry closes the sale opened by the first attempt
	assert.Equal(t, 1, api.opens)
	require.Len(t, api.closedIDs, 2)
	assert.Equal(t, api.closedIDs[0], api.closedIDs[1])
	require.Len(t, api.keys, 3)
	assert.NotEmpty(t, api.keys[0])
	assert.Equal(t, api.keys[0], api.keys[1])
	assert.Equal(t, api.keys[0], api.keys[2])
}

func TestRegisterNewCheckoutAfterCartChange(t *testing.T) {
	api := &stubAPI{closeErr: errors.New("timeout")}
	reg := NewRegister(api, zaptest.NewLogger(t))
	reg.Add(marmitex)
	reg.SelectPayment(enum.PaymentMethodPix)

	_, err := reg.Confirm(context.Background())
	require.Error(t, err)
	require.NotNil(t, reg.Pending())

	reg.Add(marmitex)
	assert.Nil(t, reg.Pending())

	api.closeErr = nil
	reg.SelectPayment(enum.PaymentMethodPix)
	_, err = reg.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, api.opens)
	require.Len(t, api.closedIDs, 2)
	assert.NotEqual(t, api.closedIDs[0], api.closedIDs[1])
	require.Len(t, api.keys, 4)
	assert.NotEqual(t, api.keys[0], api.keys[2])

	// a completed checkout starts the next one with a fresh key
	reg.Add(marmitex)
	reg.SelectPayment(enum.PaymentMethodCash)
	_, err = reg.Confirm(context.Background())
	require.NoError(t, err)
	require.Len(t, api.keys, 6)
	assert.NotEqual(t, api.keys[2], api.keys[4])
}

func TestRegisterRetryReplaysOpenedSale(t *testing.T) {
	reg, client := newLiveRegister(t)
	ctx := context.Background()

	products, err := client.Products(ctx, "")
	require.NoError(t, err)

	key := uuid.NewString()
	first, err := client.OpenSale(ctx, []posclient.OpenItem{{ProductID: products[0].ID, Quantity: 1, Price: products[0].Price}}, key)
	require.NoError(t, err)
	again, err := client.OpenSale(ctx, []posclient.OpenItem{{ProductID: products[0].ID, Quantity: 1, Price: products[0].Price}}, key)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	reg.Add(products[0])
	reg.SelectPayment(enum.PaymentMethodCash)
	sale, err := reg.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sale.SaleNumber)

	daily, err := client.DailySales(ctx)
	require.NoError(t, err)
	assert.Len(t, daily, 2)
}

func TestRegisterRejectsConcurrentConfirm(t *testing.T) {
	api := &stubAPI{entered: make(chan struct{}), release: make(chan struct{})}
	reg := NewRegister(api, nil)
	reg.Add(marmitex)
	reg.SelectPayment(enum.PaymentMethodDebit)

	done := make(chan error, 1)
	go func() {
		_, err := reg.Confirm(context.Background())
		done <- err
	}()

	<-api.entered
	assert.True(t, reg.Busy())
	_, err := reg.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrConfirmInFlight)

	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.opens)
	assert.False(t, reg.Busy())
}

// stubAPI records calls and can block or fail on demand
type stubAPI struct {
	opens     int
	closeErr  error
	entered   chan struct{}
	release   chan struct{}
	keys      []string
	closedIDs []uuid.UUID
}

func (s *stubAPI) OpenSale(_ context.Context, items []posclient.OpenItem, key string) (*posclient.Sale, error) {
	s.opens++
	s.keys = append(s.keys, key)
	if s.entered != nil {
		close(s.entered)
		<-s.release
	}
	if len(items) == 0 {
		return nil, errors.New("no items")
	}
	return &posclient.Sale{ID: uuid.New(), SaleNumber: s.opens, Status: "OPEN"}, nil
}

func (s *stubAPI) CloseSale(_ context.Context, id uuid.UUID, payments map[string]decimal.Decimal, key string) (*posclient.Sale, error) {
	s.keys = append(s.keys, key)
	s.closedIDs = append(s.closedIDs, id)
	if s.closeErr != nil {
		return nil, s.closeErr
	}
	total := decimal.Zero
	for _, amount := range payments {
		total = total.Add(amount)
	}
	return &posclient.Sale{ID: id, Status: "CLOSED", Total: total}, nil
}
