package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/document"
	"invoicer/internal/invoice"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create, list and settle invoices",
	Long: `Manage the invoice ledger.

Invoices are numbered from the counter shown by "invoicer numbering show".
Unpaid invoices become Overdue on the 7th day after their date; only the
Paid status is set by hand, with "invoicer invoice pay".`,
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue a new invoice",
	Long: `Issue a new invoice with the next number.

The amount is the net amount before VAT. With --vat the VAT rate from the
business profile is applied and recorded on the invoice. The date is a UK
date (DD/MM/YYYY) and defaults to today.`,
	Example: `  # Invoice a client, VAT included
  invoicer invoice create --client "Acme Ltd" --email accounts@acme.test \
    --amount 250 --vat --description "Website redesign"

  # Back-date an invoice and write its PDF straight away
  invoicer invoice create --client "Beta" --email pay@beta.test \
    --amount 80 --date 01/03/2024 --description "Hosting" --pdf`,
	Args: cobra.NoArgs,
	RunE: runInvoiceCreate,
}

var invoiceShowCmd = &cobra.Command{
	Use:     "show <number>",
	Short:   "Show one invoice",
	Example: `  invoicer invoice show INV-1001`,
	Args:    cobra.ExactArgs(1),
	RunE:    runInvoiceShow,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceCreateCmd, invoiceShowCmd)

	f := invoiceCreateCmd.Flags()
	f.String("client", "", "Client name")
	f.String("email", "", "Client email")
	f.String("amount", "", "Net amount before VAT")
	f.String("date", "", "Invoice date as DD/MM/YYYY (default: today)")
	f.String("description", "", "Goods or services supplied")
	f.Bool("vat", false, "Apply the profile VAT rate")
	f.Bool("pdf", false, "Write the invoice PDF to the output directory")
}

func runInvoiceCreate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "invoice")
	if err != nil {
		return err
	}
	defer s.close()

	f := cmd.Flags()
	d := invoice.Draft{}
	d.Client, _ = f.GetString("client")
	d.Email, _ = f.GetString("email")
	d.Amount, _ = f.GetString("amount")
	d.Date, _ = f.GetString("date")
	d.Description, _ = f.GetString("description")
	d.ApplyVAT, _ = f.GetBool("vat")
	writePDF, _ := f.GetBool("pdf")

	if d.Date == "" {
		d.Date = s.app.Today()
	}

	s.log.Info().
		Str("client", d.Client).
		Str("amount", d.Amount).
		Bool("vat", d.ApplyVAT).
		Msg("Creating invoice")

	inv, err := s.app.CreateInvoice(s.ctx, d)
	if err != nil {
		return s.fail(err)
	}
	s.out.Success(fmt.Sprintf("Created %s for %s, total %s%s",
		inv.Reference(), inv.Client, s.app.Config.CurrencySymbol, invoice.Money(inv.Total)))

	if writePDF {
		doc, err := s.app.InvoicePDF(s.ctx, inv.Number)
		if err != nil {
			return s.fail(err)
		}
		return writeDocument(s, doc)
	}
	return nil
}

func runInvoiceShow(cmd *cobra.Command, args []string) error {
	n, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd, "invoice")
	if err != nil {
		return err
	}
	defer s.close()

	e, err := s.app.Entry(n)
	if err != nil {
		return s.fail(err)
	}
	s.out.Invoice(e)
	return nil
}

func writeDocument(s *session, doc document.Document) error {
	path, err := s.app.WriteOutput(doc.FileName, doc.Bytes)
	if err != nil {
		return err
	}
	s.out.Field("Written", path)
	return nil
}
