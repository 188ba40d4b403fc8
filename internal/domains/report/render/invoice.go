package render

import (
	"strconv"

	reportDto "homestay/internal/domains/report/model/dto"

	"github.com/go-pdf/fpdf"
)

const paidWatermark = "LUNAS"

var invoiceColumns = []column{
	{"Kamar", 45, "L"},
	{"Check-in", 25, "C"},
	{"Check-out", 25, "C"},
	{"Malam", 15, "C"},
	{"Harga/Malam", 30, "R"},
	{"Total", 40, "R"},
}

// InvoicePDF renders an invoice. Settled invoices carry a LUNAS watermark.
func InvoicePDF(invoice reportDto.Invoice) ([]byte, error) {
	pdf := newDocument("P", "Invoice "+invoice.Number, invoice.IssuedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	if invoice.Paid() {
		watermark(pdf)
	}

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	details := [][2]string{
		{"No.", invoice.Number},
		{"Tanggal", invoice.IssuedAt.Format(dayLayout)},
		{"Tamu", tr(invoice.GuestName)},
		{"No. HP", invoice.GuestPhone},
	}

	for _, detail := range details {
		pdf.CellFormat(30, rowHeight, detail[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, rowHeight, ": "+detail[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	tableHeader(pdf, invoiceColumns)

	for _, item := range invoice.Items {
		values := []string{
			tr(item.Room), item.CheckIn, item.CheckOut, strconv.Itoa(item.Nights),
			Rupiah(item.NightlyRate), Rupiah(item.Total),
		}

		for i, col := range invoiceColumns {
			pdf.CellFormat(col.width, rowHeight, values[i], "1", 0, col.align, false, 0, "")
		}

		pdf.Ln(-1)
	}

	labelWidth := 0.0
	for _, col := range invoiceColumns[:5] {
		labelWidth += col.width
	}

	pdf.SetFont(fontFamily, "B", 9)

	for _, line := range []struct {
		label  string
		amount int64
	}{
		{"Total", invoice.Total},
		{"DP", invoice.Deposit},
		{"Sisa", invoice.BalanceDue},
	} {
		pdf.CellFormat(labelWidth, rowHeight, line.label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(invoiceColumns[5].width, rowHeight, Rupiah(line.amount), "1", 1, "R", false, 0, "")
	}

	return output(pdf)
}

func watermark(pdf *fpdf.Fpdf) {
	width, height := pdf.GetPageSize()

	pdf.SetFont(fontFamily, "B", 96)
	pdf.SetTextColor(0, 150, 80)
	pdf.SetAlpha(0.15, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(35, width/2, height/2)
	pdf.Text(width/2-pdf.GetStringWidth(paidWatermark)/2, height/2, paidWatermark)
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(0, 0, 0)
}
