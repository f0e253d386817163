package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RosterSheet is the sheet read by ReadRoster and written by RosterTemplate.
const RosterSheet = "Staff"

var rosterHeaders = []string{"Staff ID", "Name", "Department", "Position"}

// RosterRow is one staff line of an import workbook.
type RosterRow struct {
	Row        int
	ID         string
	Name       string
	Department string
	Position   string
}

// ReadRoster parses an import workbook. Rows without an id or name, and
// repeats of an id seen earlier in the file, are returned as rejected row
// numbers (1-based, as shown in spreadsheet programs).
func ReadRoster(r io.Reader) ([]RosterRow, []int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheet := RosterSheet
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading rows: %w", err)
	}

	var (
		list     []RosterRow
		rejected []int
		seen     = make(map[string]int)
	)

	for i, row := range rows {
		rowNumber := i + 1
		if i == 0 {
			continue
		}
		if isBlank(row) {
			continue
		}

		cell := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(row[n])
			}
			return ""
		}

		id, name := cell(0), cell(1)
		if id == "" || name == "" {
			rejected = append(rejected, rowNumber)
			continue
		}
		if _, exists := seen[id]; exists {
			rejected = append(rejected, rowNumber)
			continue
		}
		seen[id] = rowNumber

		list = append(list, RosterRow{
			Row:        rowNumber,
			ID:         id,
			Name:       name,
			Department: cell(2),
			Position:   cell(3),
		})
	}

	return list, rejected, nil
}

// RosterTemplate returns an empty import workbook with the header row and a
// sheet listing the known departments.
func RosterTemplate(departments []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RosterSheet); err != nil {
		return nil, err
	}
	for i, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(RosterSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	if len(departments) > 0 {
		const deptSheet = "Departments"
		if _, err := f.NewSheet(deptSheet); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(deptSheet, "A1", "Department"); err != nil {
			return nil, err
		}
		for i, dept := range departments {
			if err := f.SetCellValue(deptSheet, fmt.Sprintf("A%d", i+2), dept); err != nil {
				return nil, fmt.Errorf("failed to write department data: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error saving file: %w", err)
	}
	return buf.Bytes(), nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
