package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":       "R$ 0,00",
		"4.5":     "R$ 4,50",
		"20":      "R$ 20,00",
		"1234.5":  "R$ 1.234,50",
		"-12.345": "-R$ 12,35",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "10/05/2024", FormatDate("2024-05-10"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}

func TestMonthlyWorkbook(t *testing.T) {
	data, err := MonthlyWorkbook("2024-05", []LedgerRow{
		{Day: "2024-05-10", Total: decimal.RequireFromString("40")},
		{Day: "2024-05-11", Total: decimal.RequireFromString("12.5")},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ledgerSheet}, f.GetSheetList())

	rows, err := f.GetRows(ledgerSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Mês", "2024-05"}, rows[0])
	assert.Equal(t, []string{"Data", "Total"}, rows[1])
	assert.Equal(t, []string{"10/05/2024", "40"}, rows[2])
	assert.Equal(t, []string{"11/05/2024", "12.5"}, rows[3])
	assert.Equal(t, []string{"Total", "52.5"}, rows[4])
}

func TestMonthlyWorkbookEmptyMonth(t *testing.T) {
	data, err := MonthlyWorkbook("2024-06", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ledgerSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Total", "0"}, rows[2])
}
