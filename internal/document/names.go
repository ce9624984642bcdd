package document

import (
	"net/url"
	"regexp"
	"strings"

	"invoicer/pkg/models"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// SafeName turns s into a file name fragment: whitespace runs become a
// single underscore and anything outside [A-Za-z0-9_-] is dropped.
func SafeName(s string) string {
	return unsafeChars.ReplaceAllString(whitespaceRun.ReplaceAllString(s, "_"), "")
}

// InvoiceFileName is the download name of an invoice PDF.
func InvoiceFileName(p models.Profile, inv models.Invoice) string {
	return "Invoice_" + inv.Reference() + "_" + SafeName(p.CompanyName) + ".pdf"
}

// ReceiptFileName is the download name of a receipt PDF.
func ReceiptFileName(p models.Profile, inv models.Invoice) string {
	return "Receipt_" + inv.Reference() + "_" + SafeName(p.CompanyName) + ".pdf"
}

// InvoiceSubject is the email subject used when sending an invoice.
func InvoiceSubject(p models.Profile, inv models.Invoice) string {
	return "Invoice " + inv.Reference() + " from " + p.CompanyName
}

// ReceiptSubject is the email subject used when sending a receipt.
func ReceiptSubject(p models.Profile, inv models.Invoice) string {
	return "Receipt for Invoice " + inv.Reference() + " from " + p.CompanyName
}

// Email bodies. A mailto link cannot carry attachments, so the PDF is
// written to disk separately.
const (
	InvoiceBody = "Please find your invoice attached."
	ReceiptBody = "Please find your receipt attached."
)

// MailtoLink builds a mailto URL with every component percent-encoded.
func MailtoLink(to, subject, body string) string {
	return "mailto:" + encode(to) + "?subject=" + encode(subject) + "&body=" + encode(body)
}

// encode percent-encodes s the way a URI component is encoded, with spaces
// as %20 rather than '+'.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
