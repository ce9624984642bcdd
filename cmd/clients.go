package cmd

import (
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Summarise invoices per client",
	Long: `Show every client with their invoice count, total billed, amount still
outstanding and number of overdue invoices. Clients are matched by email,
or by name when an invoice has no email.`,
	Args: cobra.NoArgs,
	RunE: runClients,
}

func init() {
	rootCmd.AddCommand(clientsCmd)
}

func runClients(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "clients")
	if err != nil {
		return err
	}
	defer s.close()

	s.out.Clients(s.app.Clients())
	return nil
}
