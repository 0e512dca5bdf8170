package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/sangkips/bytechef-api/pkg/posclient"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart       = errors.New("carrinho vazio")
	ErrNoPayment       = errors.New("nenhum pagamento informado")
	ErrConfirmInFlight = errors.New("venda já está sendo enviada")
)

// SalesAPI is the part of the POS API the register needs
type SalesAPI interface {
	OpenSale(ctx context.Context, items []posclient.OpenItem, idempotencyKey string) (*posclient.Sale, error)
	CloseSale(ctx context.Context, id uuid.UUID, payments map[string]decimal.Decimal, idempotencyKey string) (*posclient.Sale, error)
}

// Register owns the cart and payment split of one terminal. It is safe for
// concurrent use; only one Confirm runs at a time.
type Register struct {
	api    SalesAPI
	logger *zap.Logger

	mu       sync.Mutex
	cart     Cart
	split    Split
	inFlight bool
	// pending is a sale opened for the current cart whose close failed.
	// A retry closes it instead of opening another one.
	pending *posclient.Sale
	// key is the Idempotency-Key of the current checkout, kept until it succeeds
	key string
}

// NewRegister creates an empty register
func NewRegister(api SalesAPI, logger *zap.Logger) *Register {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Register{api: api, logger: logger}
}

// Cart returns the current cart
func (r *Register) Cart() Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cart
}

// Split returns the current payment split
func (r *Register) Split() Split {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.split
}

// Add puts one unit of p in the cart
func (r *Register) Add(p posclient.Product) Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart = r.cart.Add(p)
	r.abandonPending()
	return r.cart
}

// Remove takes one unit of productID out of the cart
func (r *Register) Remove(productID uuid.UUID) Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart = r.cart.Remove(productID)
	r.abandonPending()
	return r.cart
}

// SetPayment overwrites the amount of one method
func (r *Register) SetPayment(m enum.PaymentMethod, amount decimal.Decimal) Split {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.split = r.split.Set(m, amount)
	return r.split
}

// SelectPayment moves the unpaid remainder of the cart total onto m
func (r *Register) SelectPayment(m enum.PaymentMethod) Split {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.split = r.split.Select(m, r.cart.Total())
	return r.split
}

// ClearPayments resets the split to zero
func (r *Register) ClearPayments() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.split = Split{}
}

// Confirm opens a sale with the cart items and closes it with the split.
// Cart and split are cleared only when both calls succeed; on failure they
// are kept so the operator can resubmit. Both calls carry the same
// Idempotency-Key across retries, and a sale that was opened but not closed
// is reused by the next Confirm.
func (r *Register) Confirm(ctx context.Context) (*posclient.Sale, error) {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	if r.cart.IsEmpty() {
		r.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if !r.split.CanConfirm() {
		r.mu.Unlock()
		return nil, ErrNoPayment
	}
	r.inFlight = true
	if r.key == "" {
		r.key = uuid.NewString()
	}
	cart, split, pending, key := r.cart, r.split, r.pending, r.key
	r.mu.Unlock()

	opened, sale, err := r.submit(ctx, cart, split, pending, key)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight = false
	if err != nil {
		r.pending = opened
		r.logger.Warn("checkout failed", zap.Error(err))
		return nil, err
	}
	r.cart = Cart{}
	r.split = Split{}
	r.pending = nil
	r.key = ""
	r.logger.Info("checkout completed",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("sale_number", sale.SaleNumber),
		zap.String("total", sale.Total.StringFixed(2)),
	)
	return sale, nil
}

// Busy reports whether a Confirm is running
func (r *Register) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight
}

// Pending returns the sale opened by a failed Confirm, or nil
func (r *Register) Pending() *posclient.Sale {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// abandonPending forgets the open sale of a cart that has since changed.
// The sale stays OPEN on the server. Callers hold r.mu.
func (r *Register) abandonPending() {
	if r.pending == nil && r.key == "" {
		return
	}
	if r.pending != nil {
		r.logger.Warn("cart changed, leaving sale open",
			zap.String("sale_id", r.pending.ID.String()),
			zap.Int("sale_number", r.pending.SaleNumber),
		)
	}
	r.pending = nil
	r.key = ""
}

// submit returns the opened sale even when the close fails
func (r *Register) submit(ctx context.Context, cart Cart, split Split, pending *posclient.Sale, key string) (*posclient.Sale, *posclient.Sale, error) {
	opened := pending
	if opened == nil {
		var err error
		opened, err = r.api.OpenSale(ctx, cart.OpenItems(), key)
		if err != nil {
			return nil, nil, fmt.Errorf("abrir venda: %w", err)
		}
	}
	closed, err := r.api.CloseSale(ctx, opened.ID, split.Payments(), key)
	if err != nil {
		return opened, nil, fmt.Errorf("fechar venda %d: %w", opened.SaleNumber, err)
	}
	return opened, closed, nil
}
