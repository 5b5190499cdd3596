// Package receipt renders placed orders as printable PDF receipts.
package receipt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

const (
	StoreName = "Storefront"
	qrSize    = 256
)

// QRPayload is the text encoded in the receipt QR code.
func QRPayload(order *models.Order) string {
	return fmt.Sprintf("%s|%s|%s", order.OrderID, order.Total.StringFixed(2), order.PlacedAt.UTC().Format("2006-01-02T15:04:05Z"))
}

// Render builds a one-page A4 receipt for order.
func Render(order *models.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("receipt: nil order")
	}

	qrPNG, err := qrcode.Encode(QRPayload(order), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("receipt: encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+order.OrderID, false)
	pdf.SetCreator(StoreName, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, StoreName+" Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Order ID: "+order.OrderID)
	pdf.Ln(6)
	pdf.Cell(0, 7, "Placed: "+order.PlacedAt.UTC().Format("January 2, 2006 15:04 UTC"))
	pdf.Ln(6)
	pdf.Cell(0, 7, "Paid with card ending in "+order.PaymentLast4)
	pdf.Ln(10)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 7, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 11)
	for _, line := range addressLines(order.Address) {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(100, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, it := range order.Items {
		pdf.CellFormat(100, 8, tr(it.Product.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, "$"+it.Product.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, "$"+it.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", order.Subtotal.StringFixed(2)},
		{"Shipping", order.Shipping.StringFixed(2)},
		{"Tax", order.Tax.StringFixed(2)},
		{"Total", order.Total.StringFixed(2)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Arial", "B", 12)
		}
		pdf.CellFormat(150, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, "$"+t.value, "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func addressLines(a models.Address) []string {
	cityLine := a.City
	if a.State != "" {
		cityLine += ", " + a.State
	}
	if a.ZipCode != "" {
		cityLine += " " + a.ZipCode
	}
	var lines []string
	for _, l := range []string{a.FullName, a.AddressLine1, a.AddressLine2, cityLine, a.Country, a.Phone} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
