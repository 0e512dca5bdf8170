package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/bytechef-api/internal/domain/enum"
	"github.com/sangkips/bytechef-api/internal/domain/repository"
	"github.com/sangkips/bytechef-api/pkg/apperror"
	"github.com/sangkips/bytechef-api/pkg/clock"
	"github.com/sangkips/bytechef-api/pkg/report"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// ReportService builds the daily and monthly summaries shown to the operator
type ReportService struct {
	saleRepo    repository.SaleRepository
	monthlyRepo repository.MonthlySaleRepository
	clock       clock.Clock
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	monthlyRepo repository.MonthlySaleRepository,
	clk clock.Clock,
) *ReportService {
	return &ReportService{
		saleRepo:    saleRepo,
		monthlyRepo: monthlyRepo,
		clock:       clk,
	}
}

// MethodTotal is the amount tendered with one payment method
type MethodTotal struct {
	Method    enum.PaymentMethod `json:"method"`
	Label     string             `json:"label"`
	Amount    float64            `json:"amount"`
	Formatted string             `json:"formatted"`
}

// DailyReport summarizes today's sales
type DailyReport struct {
	Date           string        `json:"date"`
	SalesCount     int           `json:"salesCount"`
	OpenCount      int           `json:"openCount"`
	ClosedCount    int           `json:"closedCount"`
	TotalAmount    float64       `json:"totalAmount"`
	FormattedTotal string        `json:"formattedTotal"`
	ByMethod       []MethodTotal `json:"byMethod"`
}

// DailySummary sums the totals of all of today's sales. OPEN sales count as zero.
func (s *ReportService) DailySummary(ctx context.Context) (*DailyReport, error) {
	day := clock.DayKey(s.clock.Now())
	sales, err := s.saleRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byMethod := make(map[enum.PaymentMethod]decimal.Decimal)
	rep := &DailyReport{Date: day, SalesCount: len(sales)}
	for _, sale := range sales {
		if sale.IsClosed() {
			rep.ClosedCount++
		} else {
			rep.OpenCount++
		}
		total = total.Add(sale.Total)
		for _, p := range sale.Payments {
			byMethod[p.Method] = byMethod[p.Method].Add(p.Amount)
		}
	}

	rep.TotalAmount = total.InexactFloat64()
	rep.FormattedTotal = report.FormatBRL(total)
	rep.ByMethod = make([]MethodTotal, 0, len(enum.PaymentMethods))
	for _, m := range enum.PaymentMethods {
		amount := byMethod[m]
		rep.ByMethod = append(rep.ByMethod, MethodTotal{
			Method:    m,
			Label:     m.Label(),
			Amount:    amount.InexactFloat64(),
			Formatted: report.FormatBRL(amount),
		})
	}
	return rep, nil
}

// MonthlyDay is one ledger row in a monthly report
type MonthlyDay struct {
	Date      string  `json:"date"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
}

// MonthlyReport summarizes the monthly ledger for one calendar month
type MonthlyReport struct {
	Month          string       `json:"month"`
	Days           []MonthlyDay `json:"days"`
	Total          float64      `json:"total"`
	FormattedTotal string       `json:"formattedTotal"`

	rows []report.LedgerRow
}

// MonthlySummary returns the ledger of month ("YYYY-MM"). Empty means the current month.
func (s *ReportService) MonthlySummary(ctx context.Context, month string) (*MonthlyReport, error) {
	start, err := s.parseMonth(month)
	if err != nil {
		return nil, err
	}
	from, to := clock.MonthWindow(start)

	rows, err := s.monthlyRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	rep := &MonthlyReport{
		Month: start.Format(monthLayout),
		Days:  make([]MonthlyDay, 0, len(rows)),
		rows:  make([]report.LedgerRow, 0, len(rows)),
	}
	for _, row := range rows {
		day := clock.DayKey(row.Date.In(start.Location()))
		rep.Days = append(rep.Days, MonthlyDay{
			Date:      day,
			Total:     row.Total.InexactFloat64(),
			Formatted: report.FormatBRL(row.Total),
		})
		rep.rows = append(rep.rows, report.LedgerRow{Day: day, Total: row.Total})
		total = total.Add(row.Total)
	}
	rep.Total = total.InexactFloat64()
	rep.FormattedTotal = report.FormatBRL(total)
	return rep, nil
}

// ExportMonthly renders the month's ledger as an XLSX workbook and returns it
// with a suggested file name.
func (s *ReportService) ExportMonthly(ctx context.Context, month string) ([]byte, string, error) {
	rep, err := s.MonthlySummary(ctx, month)
	if err != nil {
		return nil, "", err
	}
	data, err := report.MonthlyWorkbook(rep.Month, rep.rows)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("vendas-mensais-%s.xlsx", rep.Month), nil
}

func (s *ReportService) parseMonth(month string) (time.Time, error) {
	now := s.clock.Now()
	month = strings.TrimSpace(month)
	if month == "" {
		start, _ := clock.MonthWindow(now)
		return start, nil
	}
	start, err := time.ParseInLocation(monthLayout, month, now.Location())
	if err != nil {
		return time.Time{}, apperror.NewBadRequestError("Mês inválido, use o formato AAAA-MM")
	}
	return start, nil
}
