package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadRoster(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", RosterSheet); err != nil {
		t.Fatalf("sheet name: %v", err)
	}
	rows := [][]interface{}{
		{"Staff ID", "Name", "Department", "Position"},
		{"E1", "Ann", "Ops", "Clerk"},
		{"E2", "", "Ops", ""},
		{"E1", "Ann again", "", ""},
		{},
		{" E3 ", "Cy"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(RosterSheet, cell, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	list, rejected, err := ReadRoster(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}

	if len(list) != 2 || list[0].ID != "E1" || list[0].Department != "Ops" || list[1].ID != "E3" || list[1].Department != "" {
		t.Fatalf("unexpected rows %+v", list)
	}
	if len(rejected) != 2 || rejected[0] != 3 || rejected[1] != 4 {
		t.Fatalf("expected rows 3 and 4 rejected, got %v", rejected)
	}
}

func TestRosterTemplateRoundTrip(t *testing.T) {
	body, err := RosterTemplate([]string{"Ops", "Sales"})
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	list, rejected, err := ReadRoster(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if len(list) != 0 || len(rejected) != 0 {
		t.Fatalf("expected empty template, got %v %v", list, rejected)
	}
}

func TestBadges(t *testing.T) {
	png, err := QRCode("E1", 0)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected png output")
	}

	sheet, err := BadgeSheet([]Badge{{StaffID: "E1", Name: "Ann"}, {StaffID: "E2", Name: "Bob"}})
	if err != nil {
		t.Fatalf("badge sheet: %v", err)
	}
	if !bytes.HasPrefix(sheet, []byte("%PDF")) {
		t.Fatalf("expected pdf output")
	}
}
