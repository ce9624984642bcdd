package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/logger"
)

var version = "1.0.0"

// cfg is set by Execute before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - issue and track invoices for a small UK business",
	Long: `Invoicer keeps a local ledger of the invoices you issue, works out which
ones are overdue, and produces invoice and receipt PDFs ready to send.

Everything is stored on this machine only: in a JSON file by default, or in
a SQLite database with --driver sqlite. Use "invoicer backup" to take a
snapshot you can restore elsewhere.

Configuration is read from INVOICER_* environment variables, a .env file and
an optional invoicer.yaml in the working directory or ~/.invoicer.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the loaded configuration.
func Execute(c *config.Config) {
	log := logger.WithComponent("cmd")
	cfg = c

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Store location (default: INVOICER_STORE_PATH or ~/.invoicer)")
	rootCmd.PersistentFlags().String("driver", "", "Store backend: file, sqlite or memory (default: INVOICER_STORE_DRIVER)")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for PDFs, exports and backups (default: INVOICER_OUTPUT_DIR)")
}
