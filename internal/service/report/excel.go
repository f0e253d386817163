package report

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const monthlySheet = "Attendance"

// MonthlyExcel renders the grid as an xlsx workbook.
func MonthlyExcel(m Monthly) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", monthlySheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}
	offDay, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E8E8E8"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating off day style")
	}

	headers := []interface{}{"Staff ID", "Name", "Department"}
	for _, day := range m.Days {
		headers = append(headers, day[8:])
	}
	headers = append(headers, "Present", "Absent", "Half Day", "Holiday", "Weekend", "Working Days", "%")

	if err := f.SetCellValue(monthlySheet, "A1", m.Title); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(monthlySheet, "A2", &headers); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 2)
	if err := f.SetCellStyle(monthlySheet, "A1", last, bold); err != nil {
		return nil, err
	}

	for i, row := range m.Rows {
		values := []interface{}{row.Staff.ID, row.Staff.Name, row.Staff.Department}
		for _, code := range row.Codes {
			values = append(values, code)
		}
		s := row.Summary
		values = append(values, s.Present, s.Absent, s.HalfDay, s.Holiday, s.Weekend, MonthlyView.Denominator(s), s.Percent)

		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := f.SetSheetRow(monthlySheet, cell, &values); err != nil {
			return nil, errors.Wrapf(err, "writing row for %s", row.Staff.ID)
		}

		for j, code := range row.Codes {
			if code != "Ho" && code != "W" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(4+j, i+3)
			if err := f.SetCellStyle(monthlySheet, cell, cell, offDay); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(monthlySheet, "B", "C", 20); err != nil {
		return nil, err
	}
	first, _ := excelize.ColumnNumberToName(4)
	end, _ := excelize.ColumnNumberToName(3 + len(m.Days))
	if len(m.Days) > 0 {
		if err := f.SetColWidth(monthlySheet, first, end, 4); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}
