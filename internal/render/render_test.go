package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

func TestParseTheme(t *testing.T) {
	th, ok := ParseTheme(" Dark ")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, th)

	_, ok = ParseTheme("solarized")
	assert.False(t, ok)

	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
}

func TestBadge(t *testing.T) {
	p := New(&bytes.Buffer{}, ThemeLight, "£")
	assert.Contains(t, p.Badge(models.StatusUnpaid), "Pending")
	assert.Contains(t, p.Badge(models.StatusOverdue), "Overdue")
	assert.Contains(t, p.Badge(models.StatusPaid), "Paid")
}

func TestInvoices(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, ThemeDark, "£")

	p.Invoices([]invoice.Entry{
		{Invoice: models.Invoice{Number: 1002, Client: "Acme", Date: "01/01/2024", Amount: 100, ApplyVAT: true, VATAmount: 20, Total: 120, Status: models.StatusOverdue, Description: strings.Repeat("x", 150)}, OverdueDays: 12},
		{Invoice: models.Invoice{Number: 1001, Client: "Beta", Date: "02/01/2024", Amount: 5, Status: models.StatusPaid}},
	})

	out := buf.String()
	assert.Contains(t, out, "INV-1002")
	assert.Contains(t, out, "£120.00")
	assert.Contains(t, out, "12 days")
	assert.Contains(t, out, "£5.00")
	assert.Contains(t, out, strings.Repeat("x", 100)+"…")
	assert.NotContains(t, out, strings.Repeat("x", 101))
}

func TestInvoices_Empty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, ThemeLight, "£").Invoices(nil)
	assert.Equal(t, "No invoices match your filters.\n", buf.String())
}

func TestClients(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, ThemeLight, "€").Clients([]models.Client{
		{Name: "Acme", Email: "a@acme.test", Total: 72, Outstanding: 60, Overdue: 1, Invoices: 2},
	})
	out := buf.String()
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "€72.00")
	assert.Contains(t, out, "1 overdue")
}

func TestFieldErrors(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, ThemeLight, "£").FieldErrors(invoice.FieldErrors{
		"email":  "Enter a valid email.",
		"client": "Client name is required.",
	})
	assert.Equal(t, "client: Client name is required.\nemail: Enter a valid email.\n", buf.String())
}

func TestProfile(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, ThemeLight, "£").Profile(models.DefaultProfile())
	out := buf.String()
	assert.Contains(t, out, "Your Business")
	assert.Contains(t, out, "1 High Street, Town, AB1 2CD")
	assert.Contains(t, out, "20%")
}
