// Package export renders the ledger for use outside invoicer.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invoicer/pkg/models"
)

// Header is the first line of every CSV export.
var Header = []string{
	"number", "date", "client", "email", "amount",
	"applyVAT", "vatAmount", "total", "status", "description",
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// CSV renders invoices in the given order, one row each. Status is written
// as carried by the invoice, so callers pass the derived view when the
// export should match what the user sees.
//
// Only fields containing a comma are quoted. Line breaks in the description
// become a single space; other fields are written as stored.
func CSV(invoices []models.Invoice) string {
	var b strings.Builder
	writeRow(&b, Header)
	for _, inv := range invoices {
		total := inv.Total
		if total == 0 {
			total = inv.Amount
		}
		writeRow(&b, []string{
			strconv.Itoa(inv.Number),
			inv.Date,
			inv.Client,
			inv.Email,
			money(inv.Amount),
			strconv.FormatBool(inv.ApplyVAT),
			money(inv.VATAmount),
			money(total),
			string(inv.Status),
			lineBreaks.Replace(inv.Description),
		})
	}
	return b.String()
}

// FileName returns the download name for an export taken on the calendar
// day of t.
func FileName(t time.Time) string {
	return "invoices_" + t.Format("2006-01-02") + ".csv"
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(f))
	}
	b.WriteByte('\n')
}

func escape(field string) string {
	if !strings.Contains(field, ",") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
