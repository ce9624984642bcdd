package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

var invoiceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List invoices, newest first",
	Long: `List invoices ordered by number, newest first, with the status as of
today. --search matches client, email, invoice number (INV-1001) and
description, ignoring case; --status narrows to Unpaid, Overdue or Paid.`,
	Example: `  invoicer invoice list
  invoicer invoice list --status overdue
  invoicer invoice list --search acme --status paid`,
	Args: cobra.NoArgs,
	RunE: runInvoiceList,
}

func init() {
	invoiceCmd.AddCommand(invoiceListCmd)

	invoiceListCmd.Flags().StringP("search", "s", "", "Case-insensitive search text")
	invoiceListCmd.Flags().String("status", "", "Only show Unpaid, Overdue or Paid invoices")
}

func runInvoiceList(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	statusFlag, _ := cmd.Flags().GetString("status")

	filter := invoice.Filter{Query: search}
	if statusFlag != "" && statusFlag != "all" {
		st, ok := models.ParseStatus(statusFlag)
		if !ok {
			return fmt.Errorf("unknown status %q: use unpaid, overdue or paid", statusFlag)
		}
		filter.Status = st
	}

	s, err := openSession(cmd, "invoice")
	if err != nil {
		return err
	}
	defer s.close()

	s.out.Invoices(s.app.List(filter))
	if n := s.app.Ledger.OverdueCount(s.app.Now()); n > 0 {
		s.out.Warn(fmt.Sprintf("%d overdue", n))
	}
	return nil
}
