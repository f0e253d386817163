package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Badge is what gets printed on a staff QR card.
type Badge struct {
	StaffID string
	Name    string
}

// QRCode encodes the staff id as a PNG.
func QRCode(staffID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(staffID, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code for %s: %w", staffID, err)
	}
	return png, nil
}

// BadgeSheet lays out QR badges on A4 pages, three across.
func BadgeSheet(badges []Badge) ([]byte, error) {
	const (
		perRow = 3
		cellW  = 60.0
		cellH  = 72.0
		qrSize = 48.0
		left   = 15.0
		top    = 15.0
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	perPage := perRow * 3

	for i, b := range badges {
		if i > 0 && i%perPage == 0 {
			pdf.AddPage()
		}
		slot := i % perPage
		x := left + float64(slot%perRow)*cellW
		y := top + float64(slot/perRow)*cellH

		png, err := QRCode(b.StaffID, 256)
		if err != nil {
			return nil, err
		}
		name := "qr-" + b.StaffID
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, x+(cellW-qrSize)/2, y, qrSize, qrSize, false, opts, 0, "")

		pdf.SetXY(x, y+qrSize+2)
		pdf.CellFormat(cellW, 5, b.StaffID, "", 2, "C", false, 0, "")
		pdf.CellFormat(cellW, 5, b.Name, "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering badges: %w", err)
	}
	return buf.Bytes(), nil
}
