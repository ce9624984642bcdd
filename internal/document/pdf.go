// Package document renders invoices and receipts as A4 PDF files.
//
// Layout follows a fixed single-column design in millimetres: company block
// top left, optional logo top right, invoice details, money block and a
// footer with the bank details on every page. Core PDF fonts are used, with
// text translated to the cp1252 code page so that £ and accented names
// print correctly.
package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/rs/zerolog"

	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

const (
	marginLeft = 20.0
	logoBoxW   = 50.0
	logoBoxH   = 20.0
	wrapWidth  = 170.0
	fontFamily = "Helvetica"
)

// Document is a rendered PDF ready to be written out.
type Document struct {
	FileName string
	Bytes    []byte
}

// Renderer builds documents for one currency.
type Renderer struct {
	currency string
	log      zerolog.Logger
}

// NewRenderer creates a renderer printing amounts with currency as prefix.
func NewRenderer(currency string, log zerolog.Logger) *Renderer {
	return &Renderer{currency: currency, log: log}
}

type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (p page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p page) font(style string, size float64) {
	p.pdf.SetFont(fontFamily, style, size)
}

func (r *Renderer) newPage(profile models.Profile) page {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 25)
	p := page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	_, pageH := pdf.GetPageSize()
	pdf.SetFooterFunc(func() {
		p.font("B", 11)
		p.text(marginLeft, pageH-18, fmt.Sprintf("Bank Account: %s  |  Sort Code: %s", profile.Bank, profile.SortCode))
		p.font("", 11)
		p.text(marginLeft, pageH-10, "Thank you for your custom.")
	})

	pdf.AddPage()
	r.drawLogo(p, profile)
	p.font("", 18)
	p.text(marginLeft, 20, profile.CompanyName)
	return p
}

func (r *Renderer) money(v float64) string {
	return r.currency + invoice.Money(v)
}

// Invoice renders the invoice document for inv.
func (r *Renderer) Invoice(profile models.Profile, inv models.Invoice) (Document, error) {
	p := r.newPage(profile)

	p.font("", 10)
	if profile.Address != "" {
		for i, line := range strings.Split(profile.Address, "\n") {
			p.text(marginLeft, 28+float64(i)*5, line)
		}
	}
	if profile.VATNumber != "" {
		p.text(marginLeft, 45, "VAT No: "+profile.VATNumber)
	}

	p.font("", 16)
	p.text(marginLeft, 54, "Invoice")

	p.font("B", 12)
	p.text(marginLeft, 68, "Invoice No: "+inv.Reference())
	p.font("", 12)
	p.text(marginLeft, 76, "Date: "+inv.Date)
	p.text(marginLeft, 91, "Client: "+inv.Client)
	if inv.Email != "" {
		p.text(marginLeft, 99, "Email: "+inv.Email)
	}

	y := 114.0
	p.font("B", 12)
	p.text(marginLeft, y, "Amount")
	p.font("", 12)
	y += 8
	p.text(marginLeft, y, "Subtotal: "+r.money(inv.Amount))
	if inv.ApplyVAT {
		y += 8
		p.text(marginLeft, y, fmt.Sprintf("VAT (%s%%): %s", rate(inv.VATRate), r.money(inv.VATAmount)))
	}
	y += 8
	p.font("B", 12)
	p.text(marginLeft, y, "Total: "+r.money(inv.Total))
	p.font("", 12)
	y += 8
	p.text(marginLeft, y, "Status: "+string(inv.Status))

	if inv.Description != "" {
		y += 12
		p.font("B", 12)
		p.text(marginLeft, y, "Goods / Services Supplied:")
		p.font("", 12)
		p.pdf.SetXY(marginLeft, y+3)
		p.pdf.MultiCell(wrapWidth, 6, p.tr(inv.Description), "", "L", false)
	}

	return r.finish(p, InvoiceFileName(profile, inv))
}

// Receipt renders the payment receipt for inv, dated paidOn.
func (r *Renderer) Receipt(profile models.Profile, inv models.Invoice, paidOn time.Time) (Document, error) {
	p := r.newPage(profile)

	if profile.VATNumber != "" {
		p.font("", 10)
		p.text(marginLeft, 28, "VAT No: "+profile.VATNumber)
	}

	p.font("", 16)
	p.text(marginLeft, 48, "Receipt")

	p.font("B", 12)
	p.text(marginLeft, 62, "Invoice No: "+inv.Reference())
	p.font("", 12)
	p.text(marginLeft, 70, "Paid in Full")
	p.text(marginLeft, 85, "Client: "+inv.Client)
	if inv.Email != "" {
		p.text(marginLeft, 93, "Email: "+inv.Email)
	}

	y := 108.0
	p.text(marginLeft, y, "Subtotal: "+r.money(inv.Amount))
	if inv.ApplyVAT {
		y += 8
		p.text(marginLeft, y, fmt.Sprintf("VAT (%s%%): %s", rate(inv.VATRate), r.money(inv.VATAmount)))
	}
	y += 8
	p.text(marginLeft, y, "Total Paid: "+r.money(inv.Total))
	y += 8
	p.text(marginLeft, y, "Date: "+invoice.FormatDate(paidOn))

	return r.finish(p, ReceiptFileName(profile, inv))
}

func (r *Renderer) finish(p page, name string) (Document, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return Document{FileName: name, Bytes: buf.Bytes()}, nil
}

// drawLogo places the profile logo in the top-right box, keeping its aspect
// ratio. An unreadable logo is skipped so that the document still renders.
func (r *Renderer) drawLogo(p page, profile models.Profile) {
	if !profile.HasLogo() {
		return
	}
	raw, err := decodeDataURL(*profile.Logo)
	if err != nil {
		r.log.Warn().Err(err).Msg("Skipping unreadable logo")
		return
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || format != "png" || cfg.Width == 0 || cfg.Height == 0 {
		r.log.Warn().Err(err).Str("format", format).Msg("Skipping unsupported logo")
		return
	}

	w, h := logoBoxW, logoBoxW*float64(cfg.Height)/float64(cfg.Width)
	if h > logoBoxH {
		w, h = logoBoxH*float64(cfg.Width)/float64(cfg.Height), logoBoxH
	}

	pageW, _ := p.pdf.GetPageSize()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(raw))
	if p.pdf.Err() {
		r.log.Warn().Err(p.pdf.Error()).Msg("Skipping logo the PDF writer rejected")
		p.pdf.ClearError()
		return
	}
	p.pdf.ImageOptions("logo", pageW-10-w, 10, w, h, false, opts, 0, "")
}

func decodeDataURL(s string) ([]byte, error) {
	_, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(s, "data:") {
		return nil, errNotDataURL
	}
	return base64.StdEncoding.DecodeString(payload)
}

func rate(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
