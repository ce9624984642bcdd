package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var numberingCmd = &cobra.Command{
	Use:   "numbering",
	Short: "Show or set the next invoice number",
}

var numberingShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the number the next invoice will get",
	Args:  cobra.NoArgs,
	RunE:  runNumberingShow,
}

var numberingSetCmd = &cobra.Command{
	Use:   "set <number>",
	Short: "Set the next invoice number",
	Long: `Set the number the next invoice will get. Any positive whole number is
accepted; creating an invoice fails if the number is already taken.`,
	Example: `  invoicer numbering set 2001`,
	Args:    cobra.ExactArgs(1),
	RunE:    runNumberingSet,
}

func init() {
	rootCmd.AddCommand(numberingCmd)
	numberingCmd.AddCommand(numberingShowCmd, numberingSetCmd)
}

func runNumberingShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "numbering")
	if err != nil {
		return err
	}
	defer s.close()

	s.out.Field("Next invoice", fmt.Sprintf("INV-%d", s.app.Ledger.NextNumber()))
	return nil
}

func runNumberingSet(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid number %q", args[0])
	}

	s, err := openSession(cmd, "numbering")
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.app.Ledger.SetNextNumber(s.ctx, n); err != nil {
		return s.fail(err)
	}
	s.out.Success(fmt.Sprintf("Next invoice will be INV-%d", n))
	return nil
}
