// Package render turns booking data into spreadsheets and PDF documents.
package render

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dayLayout = "02/01/2006"

// Rupiah formats amount with Indonesian digit grouping, e.g. "Rp 1.500.000".
func Rupiah(amount int64) string {
	return message.NewPrinter(language.Indonesian).Sprintf("Rp %d", amount)
}

func formatDay(t time.Time) string {
	return t.Format(dayLayout)
}
