package cmd

import (
	"github.com/spf13/cobra"

	"invoicer/internal/app"
	"invoicer/internal/document"
)

var invoicePDFCmd = &cobra.Command{
	Use:   "pdf <number>",
	Short: "Write the invoice or receipt PDF",
	Long: `Write the PDF for an invoice to the output directory, named
Invoice_INV-<number>_<company>.pdf. With --receipt the receipt of a paid
invoice is written instead.`,
	Example: `  invoicer invoice pdf 1001
  invoicer invoice pdf 1001 --receipt --output-dir ~/Documents/invoices`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicePDF,
}

var invoiceEmailCmd = &cobra.Command{
	Use:   "email <number>",
	Short: "Prepare an email for an invoice",
	Long: `Write the invoice PDF and print a mailto link with the subject and body
filled in. Mail clients cannot take attachments from a link, so attach the
written PDF by hand.`,
	Example: `  invoicer invoice email 1001
  invoicer invoice email 1001 --receipt`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoiceEmail,
}

func init() {
	invoiceCmd.AddCommand(invoicePDFCmd, invoiceEmailCmd)

	invoicePDFCmd.Flags().Bool("receipt", false, "Write the receipt instead of the invoice")
	invoiceEmailCmd.Flags().Bool("receipt", false, "Send the receipt instead of the invoice")
}

func runInvoicePDF(cmd *cobra.Command, args []string) error {
	n, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	receipt, _ := cmd.Flags().GetBool("receipt")

	s, err := openSession(cmd, "document")
	if err != nil {
		return err
	}
	defer s.close()

	var doc document.Document
	if receipt {
		doc, err = s.app.ReceiptPDF(s.ctx, n)
	} else {
		doc, err = s.app.InvoicePDF(s.ctx, n)
	}
	if err != nil {
		return s.fail(err)
	}
	return writeDocument(s, doc)
}

func runInvoiceEmail(cmd *cobra.Command, args []string) error {
	n, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	receipt, _ := cmd.Flags().GetBool("receipt")

	s, err := openSession(cmd, "document")
	if err != nil {
		return err
	}
	defer s.close()

	var m app.Mail
	if receipt {
		m, err = s.app.ReceiptMail(s.ctx, n)
	} else {
		m, err = s.app.InvoiceMail(s.ctx, n)
	}
	if err != nil {
		return s.fail(err)
	}
	if err := writeDocument(s, m.Document); err != nil {
		return err
	}
	s.out.Field("To", m.To)
	s.out.Field("Subject", m.Subject)
	s.out.Field("Email", m.Link)
	return nil
}
