package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a JSON snapshot of everything",
	Long: `Write the profile, all invoices and the invoice counter to
invoicer-backup-<timestamp>.json in the output directory. Backups contain
client details; keep them somewhere safe.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Restore a JSON snapshot",
	Long: `Restore a snapshot written by "invoicer backup".

Only what the file carries is replaced: invoices when it has an invoice
list, the counter when it has a positive number, and profile fields that
are present. Everything is applied together or not at all.`,
	Example: `  invoicer restore invoicer-backup-2024-03-08T09-00-00.json`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd, restoreCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "backup")
	if err != nil {
		return err
	}
	defer s.close()

	name, data, err := s.app.Backup(s.ctx)
	if err != nil {
		return s.fail(err)
	}
	path, err := s.app.WriteOutput(name, data)
	if err != nil {
		return err
	}
	s.out.Success("Backup written")
	s.out.Field("Written", path)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	s, err := openSession(cmd, "backup")
	if err != nil {
		return err
	}
	defer s.close()

	c, err := s.app.Restore(s.ctx, data)
	if err != nil {
		return s.fail(err)
	}

	s.out.Success("Backup restored")
	if c.HasInvoices() {
		s.out.Field("Invoices", fmt.Sprint(len(c.Invoices)))
	}
	if c.NextNumber > 0 {
		s.out.Field("Next invoice", fmt.Sprintf("INV-%d", c.NextNumber))
	}
	if c.Profile != nil {
		s.out.Field("Profile", c.Profile.CompanyName)
	}
	return nil
}
