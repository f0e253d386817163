package report

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

// MonthlyPDF renders the grid on landscape A4 pages.
func MonthlyPDF(m Monthly) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 10, 8)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Attendance Report - "+m.Title)
	pdf.Ln(10)

	const (
		idW    = 18.0
		nameW  = 36.0
		dayW   = 5.6
		countW = 9.0
		rowH   = 5.0
	)

	header := func() {
		pdf.SetFont("Arial", "B", 7)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(idW, rowH, "ID", "1", 0, "C", true, 0, "")
		pdf.CellFormat(nameW, rowH, "Name", "1", 0, "C", true, 0, "")
		for _, day := range m.Days {
			pdf.CellFormat(dayW, rowH, day[8:], "1", 0, "C", true, 0, "")
		}
		for _, h := range []string{"P", "A", "H", "WD", "%"} {
			pdf.CellFormat(countW, rowH, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	pdf.SetFont("Arial", "", 7)
	pdf.SetFillColor(240, 240, 240)
	for _, row := range m.Rows {
		if pdf.GetY()+rowH > 200 {
			pdf.AddPage()
			header()
			pdf.SetFont("Arial", "", 7)
			pdf.SetFillColor(240, 240, 240)
		}

		pdf.CellFormat(idW, rowH, row.Staff.ID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(nameW, rowH, truncate(row.Staff.Name, 24), "1", 0, "L", false, 0, "")
		for _, code := range row.Codes {
			pdf.CellFormat(dayW, rowH, code, "1", 0, "C", code == "Ho" || code == "W", 0, "")
		}
		s := row.Summary
		for _, v := range []int{s.Present, s.Absent, s.HalfDay, MonthlyView.Denominator(s), s.Percent} {
			pdf.CellFormat(countW, rowH, strconv.Itoa(v), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, "P = present, A = absent, H = half day, Ho = holiday, W = weekend, WD = working days")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
