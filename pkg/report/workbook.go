package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// LedgerRow is one day of the monthly ledger.
type LedgerRow struct {
	Day   string // 2006-01-02
	Total decimal.Decimal
}

const ledgerSheet = "Mensal"

// MonthlyWorkbook builds an XLSX file listing each day's rolled-up total
// followed by the month total.
func MonthlyWorkbook(month string, rows []LedgerRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ledgerSheet); err != nil {
		return nil, fmt.Errorf("report: rename sheet: %w", err)
	}

	moneyFmt := `"R$" #,##0.00`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("report: money style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("report: header style: %w", err)
	}

	cells := map[string]interface{}{
		"A1": "Mês",
		"B1": month,
		"A2": "Data",
		"B2": "Total",
	}
	for cell, value := range cells {
		if err := f.SetCellValue(ledgerSheet, cell, value); err != nil {
			return nil, fmt.Errorf("report: header %s: %w", cell, err)
		}
	}
	if err := f.SetCellStyle(ledgerSheet, "A2", "B2", boldStyle); err != nil {
		return nil, fmt.Errorf("report: header style: %w", err)
	}

	total := decimal.Zero
	line := 3
	for _, row := range rows {
		if err := setLedgerLine(f, line, FormatDate(row.Day), row.Total, moneyStyle); err != nil {
			return nil, err
		}
		total = total.Add(row.Total)
		line++
	}
	if err := setLedgerLine(f, line, "Total", total, moneyStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ledgerSheet, cellName(1, line), cellName(1, line), boldStyle); err != nil {
		return nil, fmt.Errorf("report: total style: %w", err)
	}
	if err := f.SetColWidth(ledgerSheet, "A", "B", 16); err != nil {
		return nil, fmt.Errorf("report: column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setLedgerLine(f *excelize.File, line int, label string, amount decimal.Decimal, style int) error {
	if err := f.SetCellValue(ledgerSheet, cellName(1, line), label); err != nil {
		return fmt.Errorf("report: row %d: %w", line, err)
	}
	amountCell := cellName(2, line)
	if err := f.SetCellValue(ledgerSheet, amountCell, amount.Round(2).InexactFloat64()); err != nil {
		return fmt.Errorf("report: row %d: %w", line, err)
	}
	if err := f.SetCellStyle(ledgerSheet, amountCell, amountCell, style); err != nil {
		return fmt.Errorf("report: row %d style: %w", line, err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
