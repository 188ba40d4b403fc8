package render

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"homestay/internal/domains/booking/model/dto"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	rowHeight  = 6.0
)

type column struct {
	title string
	width float64
	align string
}

var reportColumns = []column{
	{"ID", 12, "C"},
	{"Nama Tamu", 42, "L"},
	{"No. HP", 30, "L"},
	{"Kamar", 28, "L"},
	{"Check-in", 22, "C"},
	{"Check-out", 22, "C"},
	{"Malam", 12, "C"},
	{"Total", 30, "R"},
	{"DP", 27, "R"},
	{"Sisa", 27, "R"},
	{"Status", 25, "C"},
}

func newDocument(orientation, title string, createdAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("homestay", true)
	pdf.SetCreationDate(createdAt)
	pdf.SetModificationDate(createdAt)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, fmt.Sprintf("Halaman %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	return pdf
}

func heading(pdf *fpdf.Fpdf, title, subtitle string) {
	pdf.SetFont(fontFamily, "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	pdf.CellFormat(0, 5, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func tableHeader(pdf *fpdf.Fpdf, columns []column) {
	pdf.SetFont(fontFamily, "B", 8)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)

	for _, col := range columns {
		pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, "C", true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetTextColor(0, 0, 0)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer

	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// BookingsPDF renders every booking as a landscape table with totals.
func BookingsPDF(bookings []dto.BookingResponse, generatedAt time.Time) ([]byte, error) {
	pdf := newDocument("L", "Laporan Booking Homestay", generatedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	heading(pdf, "Laporan Booking Homestay", "Dicetak "+generatedAt.Format("02/01/2006 15:04"))
	tableHeader(pdf, reportColumns)

	var total, deposit, balance int64

	for _, booking := range bookings {
		values := []string{
			strconv.FormatInt(booking.ID, 10),
			tr(booking.GuestName),
			booking.GuestPhone,
			tr(booking.Room),
			booking.CheckIn,
			booking.CheckOut,
			strconv.Itoa(booking.Nights),
			Rupiah(booking.Total),
			Rupiah(booking.Deposit),
			Rupiah(booking.BalanceDue),
			booking.StatusLabel,
		}

		for i, col := range reportColumns {
			pdf.CellFormat(col.width, rowHeight, values[i], "1", 0, col.align, false, 0, "")
		}

		pdf.Ln(-1)

		total += booking.Total
		deposit += booking.Deposit
		balance += booking.BalanceDue
	}

	pdf.SetFont(fontFamily, "B", 8)

	labelWidth := 0.0
	for _, col := range reportColumns[:7] {
		labelWidth += col.width
	}

	pdf.CellFormat(labelWidth, rowHeight, fmt.Sprintf("Total (%d booking)", len(bookings)), "1", 0, "R", false, 0, "")

	for i, amount := range []int64{total, deposit, balance} {
		pdf.CellFormat(reportColumns[7+i].width, rowHeight, Rupiah(amount), "1", 0, "R", false, 0, "")
	}

	pdf.CellFormat(reportColumns[10].width, rowHeight, "", "1", 1, "C", false, 0, "")

	return output(pdf)
}
