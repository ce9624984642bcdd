// Package render prints invoicer data to a terminal with lipgloss styling.
//
// Colours are decided by the writer: when it is not a terminal every style
// degrades to plain text, which is what scripts and tests see.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

const descriptionPreview = 100

// Printer writes styled output.
type Printer struct {
	w        io.Writer
	currency string
	st       styles
}

// New creates a printer for w using theme t.
func New(w io.Writer, t Theme, currency string) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{w: w, currency: currency, st: newStyles(r, t)}
}

func (p *Printer) money(v float64) string {
	return p.currency + invoice.Money(v)
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Badge returns the status label shown next to an invoice. Unpaid invoices
// read as Pending.
func (p *Printer) Badge(s models.Status) string {
	switch s {
	case models.StatusPaid:
		return p.st.badgePaid.Render("Paid")
	case models.StatusOverdue:
		return p.st.badgeOverdue.Render("Overdue")
	default:
		return p.st.badgePending.Render("Pending")
	}
}

// Title prints a section heading.
func (p *Printer) Title(s string) {
	p.println(p.st.title.Render(s))
}

// Success prints a confirmation line.
func (p *Printer) Success(s string) {
	p.println(p.st.success.Render(s))
}

// Warn prints a highlighted notice.
func (p *Printer) Warn(s string) {
	p.println(p.st.warning.Render(s))
}

// FieldErrors prints one line per invalid field.
func (p *Printer) FieldErrors(fe invoice.FieldErrors) {
	for _, f := range fe.Fields() {
		p.println(p.st.danger.Render(fmt.Sprintf("%s: %s", f, fe[f])))
	}
}

func (p *Printer) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.st.border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.st.header
			}
			return p.st.cell
		})
}

// Invoices prints the invoice list with derived statuses.
func (p *Printer) Invoices(entries []invoice.Entry) {
	if len(entries) == 0 {
		p.println(p.st.muted.Render("No invoices match your filters."))
		return
	}

	t := p.table("Invoice", "Client", "Date", "Subtotal", "VAT", "Total", "Status", "Description")
	for _, e := range entries {
		vat, total := "", p.money(totalOf(e.Invoice))
		if e.ApplyVAT {
			vat = p.money(e.VATAmount)
		}
		status := p.Badge(e.Status)
		if e.Status == models.StatusOverdue {
			status += p.st.danger.Render(fmt.Sprintf("%d days", e.OverdueDays))
		}
		t.Row(e.Reference(), e.Client, e.Date, p.money(e.Amount), vat, total, status, preview(e.Description))
	}
	p.println(t.String())
}

// Invoice prints a single invoice in detail.
func (p *Printer) Invoice(e invoice.Entry) {
	p.Title(e.Reference() + " " + p.Badge(e.Status))
	p.Field("Client", e.Client)
	p.Field("Email", e.Email)
	p.Field("Date", e.Date)
	p.Field("Subtotal", p.money(e.Amount))
	if e.ApplyVAT {
		p.Field(fmt.Sprintf("VAT (%g%%)", e.VATRate), p.money(e.VATAmount))
	}
	p.Field("Total", p.money(totalOf(e.Invoice)))
	if e.Status == models.StatusOverdue {
		p.Field("Overdue", fmt.Sprintf("%d days", e.OverdueDays))
	}
	p.Field("Description", e.Description)
}

// Clients prints the per-client summary.
func (p *Printer) Clients(clients []models.Client) {
	if len(clients) == 0 {
		p.println(p.st.muted.Render("No clients yet (create an invoice first)."))
		return
	}

	t := p.table("Client", "Email", "Invoices", "Total", "Outstanding", "Overdue")
	for _, c := range clients {
		outstanding := p.st.success.Render(p.money(c.Outstanding))
		if c.Outstanding > 0 {
			outstanding = p.st.danger.Render(p.money(c.Outstanding))
		}
		overdue := ""
		if c.Overdue > 0 {
			overdue = p.st.danger.Render(fmt.Sprintf("%d overdue", c.Overdue))
		}
		t.Row(c.Name, c.Email, fmt.Sprint(c.Invoices), p.money(c.Total), outstanding, overdue)
	}
	p.println(t.String())
}

// Profile prints the business profile.
func (p *Printer) Profile(pr models.Profile) {
	p.Title(pr.CompanyName)
	p.Field("Address", strings.ReplaceAll(pr.Address, "\n", ", "))
	p.Field("Bank account", pr.Bank)
	p.Field("Sort code", pr.SortCode)
	p.Field("VAT rate", fmt.Sprintf("%g%%", pr.VATRate))
	p.Field("VAT number", pr.VATNumber)
	logo := "none"
	if pr.HasLogo() {
		logo = "set"
	}
	p.Field("Logo", logo)
}

// Field prints an aligned label and value.
func (p *Printer) Field(label, value string) {
	p.println(p.st.label.Render(fmt.Sprintf("%-14s", label)) + " " + value)
}

func totalOf(inv models.Invoice) float64 {
	if inv.Total == 0 {
		return inv.Amount
	}
	return inv.Total
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= descriptionPreview {
		return s
	}
	return string(r[:descriptionPreview]) + "…"
}
