package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"expense-ledger/internal/models"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const exportSheet = "Expenses"

var exportHeader = []string{"Date", "Category", "Narration", "Amount"}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Export writes expenses to w in the given format.
func Export(w io.Writer, format string, expenses []models.Expense) error {
	switch format {
	case FormatCSV:
		return exportCSV(w, expenses)
	case FormatXLSX:
		return exportXLSX(w, expenses)
	}
	return Validation("Unsupported format")
}

func categoryName(e *models.Expense) string {
	if e.Category == nil {
		return ""
	}
	return e.Category.Name
}

func exportCSV(w io.Writer, expenses []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return Internal(err)
	}
	for i := range expenses {
		e := &expenses[i]
		if err := cw.Write([]string{
			e.CreatedAt.UTC().Format("2006-01-02"),
			categoryName(e),
			e.Narration,
			e.Amount.String(),
		}); err != nil {
			return Internal(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return Internal(err)
	}
	return nil
}

func exportXLSX(w io.Writer, expenses []models.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	// rename the default sheet instead of adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return Internal(err)
	}

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return Internal(err)
		}
	}

	for idx := range expenses {
		e := &expenses[idx]
		row := idx + 2
		amount := e.Amount.InexactFloat64()
		values := []any{e.CreatedAt.UTC().Format("2006-01-02"), categoryName(e), e.Narration, amount}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return Internal(err)
			}
		}
	}

	totalRow := len(expenses) + 2
	_ = f.SetCellValue(exportSheet, fmt.Sprintf("C%d", totalRow), "Total")
	if len(expenses) > 0 {
		_ = f.SetCellFormula(exportSheet, fmt.Sprintf("D%d", totalRow), fmt.Sprintf("SUM(D2:D%d)", totalRow-1))
	} else {
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("D%d", totalRow), 0)
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 12)
	_ = f.SetColWidth(exportSheet, "B", "B", 18)
	_ = f.SetColWidth(exportSheet, "C", "C", 36)
	_ = f.SetColWidth(exportSheet, "D", "D", 12)

	if err := f.Write(w); err != nil {
		return Internal(err)
	}
	return nil
}
