// Package export renders reports as xlsx workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stwalsh4118/room4rent/internal/models"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// moneyNumFmt is the built-in "#,##0.00" number format.
const moneyNumFmt = 4

var (
	incomeHeader = []string{"Month", "Total Billed", "Paid Bills", "Paid Amount"}
	unpaidHeader = []string{"Tenant", "Email", "Room", "Month", "Year", "Due Date", "Status", "Total", "Remaining Balance"}
)

// IncomeReport renders the monthly income rows for a year.
func IncomeReport(year int, rows []models.MonthlyIncome) ([]byte, error) {
	sheet := fmt.Sprintf("Income %d", year)

	data := make([][]interface{}, 0, len(rows)+1)
	total, paid := decimal.Zero, decimal.Zero
	for _, r := range rows {
		data = append(data, []interface{}{
			time.Month(r.Month).String(),
			money(r.Total),
			r.PaidCount,
			money(r.PaidAmount),
		})
		total = total.Add(r.Total)
		paid = paid.Add(r.PaidAmount)
	}
	data = append(data, []interface{}{"Total", money(total), nil, money(paid)})

	return render(sheet, incomeHeader, data, []int{2, 4}, []float64{14, 16, 12, 16})
}

// UnpaidBills renders the outstanding bills.
func UnpaidBills(rows []models.UnpaidBill) ([]byte, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{
			r.Name,
			r.Email,
			r.RoomName,
			r.Month,
			r.Year,
			r.DueDate.String(),
			string(r.Status),
			money(r.TotalAmount),
			money(r.RemainingBalance),
		})
	}

	return render("Unpaid Bills", unpaidHeader, data, []int{8, 9}, []float64{24, 28, 14, 8, 8, 12, 12, 14, 18})
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// render writes a single-sheet workbook. moneyCols are 1-based column
// numbers formatted as currency.
func render(sheet string, header []string, rows [][]interface{}, moneyCols []int, widths []float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		for _, col := range moneyCols {
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(rows)+1)
			if err := f.SetCellStyle(sheet, top, bottom, moneyStyle); err != nil {
				return nil, fmt.Errorf("failed to style money column: %w", err)
			}
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
