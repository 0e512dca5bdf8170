package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/sangkips/bytechef-api/pkg/apperror"
	"github.com/sangkips/bytechef-api/pkg/clock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Messages shown to the operator
const (
	MsgNoItems        = "Nenhum item enviado"
	MsgNoPayments     = "Nenhum pagamento informado"
	MsgSaleNotFound   = "Venda não encontrada"
	MsgSaleClosed     = "Venda já foi fechada"
	MsgNothingToRoll  = "Nenhuma venda fechada hoje."
	MsgRolledUp       = "Total diário enviado para o mensal."
	MsgDailyPurged    = "Vendas do dia apagadas com sucesso."
	msgInvalidQty     = "Quantidade inválida"
	msgInvalidPrice   = "Preço inválido"
	msgInvalidProduct = "Produto inválido"
)

// SaleService handles the sale lifecycle and the daily/monthly ledger
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	monthlyRepo repository.MonthlySaleRepository
	clock       clock.Clock
	logger      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	monthlyRepo repository.MonthlySaleRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		monthlyRepo: monthlyRepo,
		clock:       clk,
		logger:      logger,
	}
}

// OpenSaleItemInput is one cart line sent by the client
type OpenSaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// OpenSaleInput represents the open sale input
type OpenSaleInput struct {
	Items []OpenSaleItemInput
}

// OpenSale persists a new OPEN sale with the supplied items verbatim.
// Prices are trusted from the caller; the catalog is only checked for existence.
func (s *SaleService) OpenSale(ctx context.Context, input *OpenSaleInput) (*entity.Sale, error) {
	if input == nil || len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError(MsgNoItems)
	}

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, apperror.NewBadRequestError(msgInvalidProduct)
		}
		if item.Quantity < 1 {
			return nil, apperror.NewBadRequestError(msgInvalidQty)
		}
		if item.Price.IsNegative() {
			return nil, apperror.NewBadRequestError(msgInvalidPrice)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	// Batch fetch all products in one query (prevents N+1)
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		known[p.ID] = true
	}

	now := s.clock.Now()
	sale := &entity.Sale{
		BusinessDay: clock.DayKey(now),
		Date:        now,
		Status:      enum.SaleStatusOpen,
		Total:       decimal.Zero,
		Items:       make([]entity.SaleItem, 0, len(input.Items)),
	}
	for i, item := range input.Items {
		if !known[item.ProductID] {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Produto %s não encontrado", item.ProductID))
		}
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.Round(2),
			Position:  i + 1,
		})
	}

	if err := s.saleRepo.CreateOpen(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale opened",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("sale_number", sale.SaleNumber),
		zap.String("business_day", sale.BusinessDay),
		zap.Int("items", len(sale.Items)),
	)
	return sale, nil
}

// CloseSale records the positive payments, sets total to their sum and marks
// the sale CLOSED. The total is not reconciled against the item lines.
func (s *SaleService) CloseSale(ctx context.Context, id uuid.UUID, payments map[string]decimal.Decimal) (*entity.Sale, error) {
	if len(payments) == 0 {
		return nil, apperror.NewBadRequestError(MsgNoPayments)
	}

	amounts := make(map[enum.PaymentMethod]decimal.Decimal, len(payments))
	for key, amount := range payments {
		method, err := enum.ParsePaymentMethod(key)
		if err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Forma de pagamento inválida: %s", key))
		}
		amount = amount.Round(2)
		if !amount.IsPositive() {
			continue
		}
		amounts[method] = amounts[method].Add(amount)
	}

	entries := make([]entity.SalePayment, 0, len(amounts))
	total := decimal.Zero
	for _, method := range enum.PaymentMethods {
		amount, ok := amounts[method]
		if !ok {
			continue
		}
		entries = append(entries, entity.SalePayment{Method: method, Amount: amount})
		total = total.Add(amount)
	}
	if len(entries) == 0 {
		return nil, apperror.NewBadRequestError(MsgNoPayments)
	}

	if err := s.saleRepo.Close(ctx, id, entries, total); err != nil {
		switch {
		case errors.Is(err, repository.ErrSaleNotFound):
			return nil, apperror.NewAppError(http.StatusNotFound, MsgSaleNotFound)
		case errors.Is(err, repository.ErrSaleAlreadyClosed):
			return nil, apperror.NewConflictError(MsgSaleClosed)
		}
		return nil, err
	}

	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewAppError(http.StatusNotFound, MsgSaleNotFound)
	}

	s.logger.Info("sale closed",
		zap.String("sale_id", sale.ID.String()),
		zap.Int("sale_number", sale.SaleNumber),
		zap.String("total", total.StringFixed(2)),
		zap.String("items_total", sale.ItemsTotal().StringFixed(2)),
		zap.Int("payments", len(entries)),
	)
	if !sale.ItemsTotal().Equal(total) {
		s.logger.Debug("sale total differs from item lines",
			zap.String("sale_id", sale.ID.String()),
			zap.String("difference", total.Sub(sale.ItemsTotal()).StringFixed(2)),
		)
	}
	return sale, nil
}

// GetSale returns one sale with items and payments
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewAppError(http.StatusNotFound, MsgSaleNotFound)
	}
	return sale, nil
}

// ListDaily returns today's sales of any status, oldest first
func (s *SaleService) ListDaily(ctx context.Context) ([]entity.Sale, error) {
	return s.saleRepo.ListByDay(ctx, clock.DayKey(s.clock.Now()))
}

// RollupResult is the outcome of folding today's closed sales into the monthly ledger
type RollupResult struct {
	// Sent is false when there was no closed sale today and nothing changed
	Sent        bool
	TotalAmount decimal.Decimal
	Monthly     *entity.MonthlySale
}

// SendDailyToMonthly adds the sum of today's CLOSED sale totals to today's
// monthly row. Calling it twice on the same day adds the sum twice.
func (s *SaleService) SendDailyToMonthly(ctx context.Context) (*RollupResult, error) {
	now := s.clock.Now()
	sales, err := s.saleRepo.ListClosedByDay(ctx, clock.DayKey(now))
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return &RollupResult{Sent: false, TotalAmount: decimal.Zero}, nil
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}

	monthly, err := s.monthlyRepo.AddToDay(ctx, clock.StartOfDay(now), total)
	if err != nil {
		return nil, err
	}

	s.logger.Info("daily total sent to monthly",
		zap.String("day", clock.DayKey(now)),
		zap.Int("closed_sales", len(sales)),
		zap.String("amount", total.StringFixed(2)),
		zap.String("monthly_total", monthly.Total.StringFixed(2)),
	)
	return &RollupResult{Sent: true, TotalAmount: total, Monthly: monthly}, nil
}

// PurgeDaily irreversibly deletes today's sales, items and payments.
// The monthly ledger is not touched.
func (s *SaleService) PurgeDaily(ctx context.Context) (int64, error) {
	day := clock.DayKey(s.clock.Now())
	deleted, err := s.saleRepo.PurgeDay(ctx, day)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("daily sales purged", zap.String("day", day), zap.Int64("sales", deleted))
	return deleted, nil
}

// ListMonthly returns the whole monthly ledger ascending by day
func (s *SaleService) ListMonthly(ctx context.Context) ([]entity.MonthlySale, error) {
	return s.monthlyRepo.List(ctx)
}
