package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"invoicer/internal/profile"
	"invoicer/pkg/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the business profile",
	Long: `The business profile is printed on every invoice and receipt: company
name, address, bank details, VAT number and logo. Its VAT rate is applied
to new invoices created with --vat.`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the business profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change profile fields",
	Long: `Change the given profile fields and leave the others as they are.
Use "\n" inside --address to separate lines.`,
	Example: `  invoicer profile set --company "Acme Trading" --vat-rate 20 --vat-number GB123456789
  invoicer profile set --address "1 High Street\nTown\nAB1 2CD"`,
	Args: cobra.NoArgs,
	RunE: runProfileSet,
}

var profileLogoCmd = &cobra.Command{
	Use:   "logo <image-file>",
	Short: "Set the logo printed on documents",
	Long: `Read a PNG, JPEG, GIF, BMP or WebP image, scale it to the configured
width (INVOICER_LOGO_WIDTH, 300 pixels by default) and store it with the
profile. Use --clear to remove the logo.`,
	Example: `  invoicer profile logo ./logo.png
  invoicer profile logo --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfileLogo,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileLogoCmd)

	f := profileSetCmd.Flags()
	f.String("company", "", "Company name")
	f.String("address", "", "Address, lines separated by \\n")
	f.String("bank", "", "Bank account number")
	f.String("sort-code", "", "Bank sort code")
	f.Float64("vat-rate", 0, "VAT rate in percent (0-100)")
	f.String("vat-number", "", "VAT registration number")

	profileLogoCmd.Flags().Bool("clear", false, "Remove the current logo")
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, "profile")
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.app.Profiles.Load(s.ctx)
	if err != nil {
		return s.fail(err)
	}
	s.out.Profile(p)
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	var changes []func(*models.Profile)

	str := func(flag string, apply func(*models.Profile, string)) {
		if f.Changed(flag) {
			v, _ := f.GetString(flag)
			changes = append(changes, func(p *models.Profile) { apply(p, v) })
		}
	}
	str("company", func(p *models.Profile, v string) { p.CompanyName = v })
	str("address", func(p *models.Profile, v string) { p.Address = strings.ReplaceAll(v, `\n`, "\n") })
	str("bank", func(p *models.Profile, v string) { p.Bank = v })
	str("sort-code", func(p *models.Profile, v string) { p.SortCode = v })
	str("vat-number", func(p *models.Profile, v string) { p.VATNumber = v })
	if f.Changed("vat-rate") {
		rate, _ := f.GetFloat64("vat-rate")
		changes = append(changes, func(p *models.Profile) { p.VATRate = rate })
	}
	if len(changes) == 0 {
		return fmt.Errorf("nothing to change; see --help for the available fields")
	}

	s, err := openSession(cmd, "profile")
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.app.Profiles.Patch(s.ctx, func(p *models.Profile) {
		for _, apply := range changes {
			apply(p)
		}
	})
	if err != nil {
		return s.fail(err)
	}
	s.out.Success("Profile saved")
	s.out.Profile(p)
	return nil
}

func runProfileLogo(cmd *cobra.Command, args []string) error {
	remove, _ := cmd.Flags().GetBool("clear")
	if !remove && len(args) == 0 {
		return fmt.Errorf("give an image file, or --clear to remove the logo")
	}

	s, err := openSession(cmd, "profile")
	if err != nil {
		return err
	}
	defer s.close()

	var logo *string
	if !remove {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open logo: %w", err)
		}
		defer file.Close()

		url, err := profile.ScaleLogo(file, s.app.Config.LogoWidth)
		if err != nil {
			return s.fail(err)
		}
		logo = &url
	}

	if _, err := s.app.Profiles.Patch(s.ctx, func(p *models.Profile) { p.Logo = logo }); err != nil {
		return s.fail(err)
	}
	if remove {
		s.out.Success("Logo removed")
	} else {
		s.out.Success("Logo saved")
	}
	return nil
}
