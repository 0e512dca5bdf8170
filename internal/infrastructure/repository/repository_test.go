package repository_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bytechef-api/internal/domain/entity"
	"github.com/sangkips/bytechef-api/internal/domain/enum"
	domainRepo "github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/sangkips/bytechef-api/internal/infrastructure/repository"
	"github.com/sangkips/bytechef-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func firstProduct(t *testing.T, db *gorm.DB) entity.Product {
	t.Helper()
	products, err := repository.NewProductRepository(db).List(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	return products[0]
}

func openSale(t *testing.T, repo domainRepo.SaleRepository, product entity.Product, at time.Time) *entity.Sale {
	t.Helper()
	sale := &entity.Sale{
		BusinessDay: at.Format("2006-01-02"),
		Date:        at,
		Items: []entity.SaleItem{
			{ProductID: product.ID, Quantity: 1, Price: product.Price, Position: 1},
		},
	}
	require.NoError(t, repo.CreateOpen(context.Background(), sale))
	return sale
}

func TestProductListAndSearch(t *testing.T) {
	db := testutil.NewSeededDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Marmitex Grande", all[0].Name)

	found, err := repo.List(ctx, &domainRepo.ProductFilterParams{Search: "MARMITEX"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	byID, err := repo.List(ctx, &domainRepo.ProductFilterParams{Search: all[2].ID.String()[:8]})
	require.NoError(t, err)
	require.NotEmpty(t, byID)
	assert.Equal(t, all[2].ID, byID[0].ID)

	// a fragment from the middle of the id, upper-cased
	middle, err := repo.List(ctx, &domainRepo.ProductFilterParams{Search: strings.ToUpper(all[1].ID.String()[9:23])})
	require.NoError(t, err)
	require.Len(t, middle, 1)
	assert.Equal(t, all[1].ID, middle[0].ID)

	for _, wildcard := range []string{"%", "_", "marmitex_"} {
		literal, err := repo.List(ctx, &domainRepo.ProductFilterParams{Search: wildcard})
		require.NoError(t, err)
		assert.Empty(t, literal, wildcard)
	}

	none, err := repo.List(ctx, &domainRepo.ProductFilterParams{Search: "pizza"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductGetByIDs(t *testing.T) {
	db := testutil.NewSeededDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()
	p := firstProduct(t, db)

	got, err := repo.GetByIDs(ctx, []uuid.UUID{p.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, dec("20").Equal(got[0].Price))

	byName, err := repo.GetByName(ctx, p.Name)
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, p.ID, byName.ID)

	missing, err := repo.GetByName(ctx, "Pastel")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaleNumbersArePerDay(t *testing.T) {
	db := testutil.NewSeededDB(t)
	repo := repository.NewSaleRepository(db)
	p := firstProduct(t, db)

	day1 := testutil.Noon(2024, time.May, 10)
	day2 := testutil.Noon(2024, time.May, 11)

	for want := 1; want <= 3; want++ {
		sale := openSale(t, repo, p, day1.Add(time.Duration(want)*time.Minute))
		assert.Equal(t, want, sale.SaleNumber)
		assert.Equal(t, enum.SaleStatusOpen, sale.Status)
	}
	assert.Equal(t, 1, openSale(t, repo, p, day2).SaleNumber)
	assert.Equal(t, 4, openSale(t, repo, p, day1.Add(time.Hour)).SaleNumber)
}

func TestCloseSale(t *testing.T) {
	db := testutil.NewSeededDB(t)
	repo := repository.NewSaleRepository(db)
	ctx := context.Background()
	sale := openSale(t, repo, firstProduct(t, db), testutil.Noon(2024, time.May, 10))

	payments := []entity.SalePayment{
		{Method: enum.PaymentMethodCash, Amount: dec("12.50")},
		{Method: enum.PaymentMethodPix, Amount: dec("7.50")},
	}
	require.NoError(t, repo.Close(ctx, sale.ID, payments, dec("20")))

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, enum.SaleStatusClosed, got.Status)
	assert.True(t, dec("20").Equal(got.Total))
	require.Len(t, got.Payments, 2)
	assert.Equal(t, enum.PaymentMethodCash, got.Payments[0].Method)
	assert.True(t, dec("7.5").Equal(got.Payments[1].Amount))
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].Product)

	err = repo.Close(ctx, sale.ID, payments, dec("20"))
	assert.ErrorIs(t, err, domainRepo.ErrSaleAlreadyClosed)

	err = repo.Close(ctx, uuid.New(), payments, dec("20"))
	assert.ErrorIs(t, err, domainRepo.ErrSaleNotFound)

	// the rejected closes must not leave payments behind
	again, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, again.Payments, 2)
}

func TestListByDayOrdersAscending(t *testing.T) {
	db := testutil.NewSeededDB(t)
	repo := repository.NewSaleRepository(db)
	ctx := context.Background()
	p := firstProduct(t, db)
	noon := testutil.Noon(2024, time.May, 10)

	late := openSale(t, repo, p, noon.Add(2*time.Hour))
	early := openSale(t, repo, p, noon)
	openSale(t, repo, p, noon.AddDate(0, 0, 1))

	sales, err := repo.ListByDay(ctx, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, early.ID, sales[0].ID)
	assert.Equal(t, late.ID, sales[1].ID)
	require.NotNil(t, sales[0].Items[0].Product)
	assert.Equal(t, p.Name, sales[0].Items[0].Product.Name)

	closed, err := repo.ListClosedByDay(ctx, "2024-05-10")
	require.NoError(t, err)
	assert.Empty(t, closed)
}

func TestPurgeDayResetsNumbering(t *testing.T) {
	db := testutil.NewSeededDB(t)
	repo := repository.NewSaleRepository(db)
	ctx := context.Background()
	p := firstProduct(t, db)
	noon := testutil.Noon(2024, time.May, 10)

	first := openSale(t, repo, p, noon)
	openSale(t, repo, p, noon.Add(time.Minute))
	require.NoError(t, repo.Close(ctx, first.ID, []entity.SalePayment{{Method: enum.PaymentMethodCash, Amount: dec("20")}}, dec("20")))
	other := openSale(t, repo, p, noon.AddDate(0, 0, -1))

	deleted, err := repo.PurgeDay(ctx, "2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	sales, err := repo.ListByDay(ctx, "2024-05-10")
	require.NoError(t, err)
	assert.Empty(t, sales)

	var items, payments int64
	require.NoError(t, db.Model(&entity.SaleItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&entity.SalePayment{}).Count(&payments).Error)
	assert.Equal(t, int64(1), items)
	assert.Equal(t, int64(0), payments)

	kept, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	assert.Equal(t, 1, openSale(t, repo, p, noon.Add(time.Hour)).SaleNumber)
}

func TestMonthlyAddToDayIsAdditive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewMonthlySaleRepository(db)
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	row, err := repo.AddToDay(ctx, day, dec("20"))
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(row.Total))

	row, err = repo.AddToDay(ctx, day, dec("20"))
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(row.Total))

	_, err = repo.AddToDay(ctx, day.AddDate(0, 1, 0), dec("5.25"))
	require.NoError(t, err)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, day.Equal(rows[0].Date))

	may, err := repo.ListBetween(ctx, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, may, 1)
	assert.True(t, dec("40").Equal(may[0].Total))

}

func TestIdempotencyRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewIdempotencyRepository(db)
	ctx := context.Background()
	now := testutil.Noon(2024, time.May, 10)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "abc",
		Endpoint:     "POST /sales/daily/sendToMonthly",
		ResponseCode: 200,
		ResponseBody: `{"message":"ok"}`,
		ExpiresAt:    now.Add(time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "abc", "POST /sales/daily/sendToMonthly")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 200, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "abc", "POST /sales/open")
	require.NoError(t, err)
	assert.Nil(t, other)

	removed, err := repo.DeleteExpired(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
