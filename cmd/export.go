package cmd

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export all invoices as CSV",
	Long: `Write every invoice to invoices_<date>.csv in the output directory,
with the status as of today. Use --stdout to print the CSV instead.`,
	Example: `  invoicer export csv
  invoicer export csv --stdout > invoices.csv`,
	Args: cobra.NoArgs,
	RunE: runExportCSV,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)

	exportCSVCmd.Flags().Bool("stdout", false, "Print to standard output instead of writing a file")
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")

	s, err := openSession(cmd, "export")
	if err != nil {
		return err
	}
	defer s.close()

	name, text := s.app.ExportCSV()
	if toStdout {
		_, err := cmd.OutOrStdout().Write([]byte(text))
		return err
	}
	path, err := s.app.WriteOutput(name, []byte(text))
	if err != nil {
		return err
	}
	s.out.Field("Written", path)
	return nil
}
