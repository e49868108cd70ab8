// Package export renders a sales report as an Excel workbook.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"go-shop-backoffice/internal/report"
)

const (
	SheetSales     = "Sales"
	SheetByDate    = "By Date"
	SheetByProduct = "By Product"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportWorkbook writes the rows and both summaries into three sheets.
// Summary sheets are sorted by key so the file is stable for a given report.
func ReportWorkbook(rep *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSales); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetByDate); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetByProduct); err != nil {
		return nil, err
	}

	sales := [][]interface{}{{"Item", "Quantity", "Price", "Total", "Payment Mode", "Timestamp"}}
	for _, r := range rep.Rows {
		sales = append(sales, []interface{}{
			r.Item, r.Quantity, r.Price.InexactFloat64(), r.Total.InexactFloat64(), r.PaymentMode, r.Timestamp,
		})
	}
	if err := writeRows(f, SheetSales, sales); err != nil {
		return nil, err
	}

	days := make([]string, 0, len(rep.ByDate))
	for day := range rep.ByDate {
		days = append(days, day)
	}
	sort.Strings(days)
	byDate := [][]interface{}{{"Date", "Quantity", "Amount"}}
	for _, day := range days {
		b := rep.ByDate[day]
		byDate = append(byDate, []interface{}{day, b.Qty, b.Amount.InexactFloat64()})
	}
	if err := writeRows(f, SheetByDate, byDate); err != nil {
		return nil, err
	}

	items := make([]string, 0, len(rep.ByProductPayment))
	for item := range rep.ByProductPayment {
		items = append(items, item)
	}
	sort.Strings(items)
	byProduct := [][]interface{}{{"Item", "Payment Mode", "Quantity", "Amount"}}
	for _, item := range items {
		modes := rep.ByProductPayment[item]
		names := make([]string, 0, len(modes))
		for mode := range modes {
			names = append(names, mode)
		}
		sort.Strings(names)
		for _, mode := range names {
			b := modes[mode]
			byProduct = append(byProduct, []interface{}{item, mode, b.Qty, b.Amount.InexactFloat64()})
		}
	}
	if err := writeRows(f, SheetByProduct, byProduct); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
