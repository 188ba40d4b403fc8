package render

import (
	"fmt"

	"homestay/internal/domains/booking/model/dto"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName    = "Laporan Booking"
	defaultSheet = "Sheet1"
	lastColumn   = "M"
	moneyFormat  = 3 // #,##0
)

var spreadsheetHeader = []any{
	"ID", "Grup", "Nama Tamu", "No. HP", "Kamar", "Check-in", "Check-out",
	"Malam", "Harga/Malam", "Total", "DP", "Sisa", "Status",
}

// Spreadsheet writes one row per booking followed by a totals row.
func Spreadsheet(bookings []dto.BookingResponse) (data []byte, err error) {
	f := excelize.NewFile()

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close spreadsheet: %w", closeErr)
		}
	}()

	if err = f.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err = f.SetSheetRow(SheetName, "A1", &spreadsheetHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	var total, deposit, balance int64

	for i, booking := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		row := []any{
			booking.ID, booking.GroupID, booking.GuestName, booking.GuestPhone, booking.Room,
			booking.CheckIn, booking.CheckOut, booking.Nights, booking.NightlyRate,
			booking.Total, booking.Deposit, booking.BalanceDue, booking.StatusLabel,
		}

		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write booking %d: %w", booking.ID, err)
		}

		total += booking.Total
		deposit += booking.Deposit
		balance += booking.BalanceDue
	}

	totalsRow := len(bookings) + 2

	totals := []any{"Total", nil, nil, nil, nil, nil, nil, nil, nil, total, deposit, balance}
	if err = f.SetSheetRow(SheetName, fmt.Sprintf("A%d", totalsRow), &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}

	if err = style(f, totalsRow); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	return buf.Bytes(), nil
}

func style(f *excelize.File, totalsRow int) error {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"808080"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: moneyFormat})
	if err != nil {
		return fmt.Errorf("failed to create totals style: %w", err)
	}

	steps := []func() error{
		func() error { return f.SetCellStyle(SheetName, "A1", lastColumn+"1", header) },
		func() error { return f.SetCellStyle(SheetName, "I2", fmt.Sprintf("L%d", totalsRow), money) },
		func() error { return f.SetCellStyle(SheetName, fmt.Sprintf("A%d", totalsRow), fmt.Sprintf("L%d", totalsRow), bold) },
		func() error { return f.SetColWidth(SheetName, "A", "B", 10) },
		func() error { return f.SetColWidth(SheetName, "C", lastColumn, 16) },
		func() error {
			return f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
		},
		func() error { return f.AutoFilter(SheetName, fmt.Sprintf("A1:%s%d", lastColumn, totalsRow-1), nil) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("failed to style spreadsheet: %w", err)
		}
	}

	return nil
}
