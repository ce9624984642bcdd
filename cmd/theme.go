package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/render"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show, set or toggle the terminal colour theme",
	Long: `With no argument the theme is toggled between light and dark. The
choice is stored with your data.`,
	Example: `  invoicer theme
  invoicer theme dark`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "theme")
	if err != nil {
		return err
	}
	defer s.close()

	next := s.app.Theme(s.ctx).Toggle()
	if len(args) == 1 {
		t, ok := render.ParseTheme(args[0])
		if !ok {
			return fmt.Errorf("unknown theme %q: use light or dark", args[0])
		}
		next = t
	}

	if err := s.app.SetTheme(s.ctx, next); err != nil {
		return s.fail(err)
	}
	render.New(cmd.OutOrStdout(), next, s.app.Config.CurrencySymbol).Success(fmt.Sprintf("Theme set to %s", next))
	return nil
}
