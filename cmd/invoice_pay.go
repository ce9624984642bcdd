package cmd

import (
	"github.com/spf13/cobra"
)

var invoicePayCmd = &cobra.Command{
	Use:   "pay <number>",
	Short: "Mark an invoice as paid",
	Long: `Mark an Unpaid or Overdue invoice as Paid. Paid is final.

With --receipt the receipt PDF, dated today, is written to the output
directory. With --email a mailto link for sending the receipt is printed
as well.`,
	Example: `  invoicer invoice pay 1001
  invoicer invoice pay INV-1001 --receipt --email`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicePay,
}

func init() {
	invoiceCmd.AddCommand(invoicePayCmd)

	invoicePayCmd.Flags().Bool("receipt", false, "Write the receipt PDF")
	invoicePayCmd.Flags().Bool("email", false, "Print a mailto link for the receipt")
}

func runInvoicePay(cmd *cobra.Command, args []string) error {
	n, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	receipt, _ := cmd.Flags().GetBool("receipt")
	email, _ := cmd.Flags().GetBool("email")

	s, err := openSession(cmd, "invoice")
	if err != nil {
		return err
	}
	defer s.close()

	inv, err := s.app.MarkPaid(s.ctx, n)
	if err != nil {
		return s.fail(err)
	}
	s.out.Success(inv.Reference() + " marked as paid")

	switch {
	case email:
		m, err := s.app.ReceiptMail(s.ctx, n)
		if err != nil {
			return s.fail(err)
		}
		if err := writeDocument(s, m.Document); err != nil {
			return err
		}
		s.out.Field("Email", m.Link)
	case receipt:
		doc, err := s.app.ReceiptPDF(s.ctx, n)
		if err != nil {
			return s.fail(err)
		}
		return writeDocument(s, doc)
	}
	return nil
}
