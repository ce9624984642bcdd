package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicer/internal/app"
	"invoicer/internal/backup"
	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/profile"
	"invoicer/internal/render"
	"invoicer/internal/storage"
)

// session is an open workspace plus a printer bound to the command output.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	app    *app.App
	out    *render.Printer
	log    zerolog.Logger
}

// openSession applies the global flags to the configuration and opens the
// workspace. Callers must call close.
func openSession(cmd *cobra.Command, component string) (*session, error) {
	log := logger.WithComponent(component)

	c, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	a, err := app.Open(ctx, c)
	if err != nil {
		cancel()
		return nil, handleError(err, log)
	}

	out := render.New(cmd.OutOrStdout(), a.Theme(ctx), c.CurrencySymbol)
	return &session{ctx: ctx, cancel: cancel, app: a, out: out, log: log}, nil
}

func (s *session) close() {
	if err := s.app.Close(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to close store")
	}
	s.cancel()
}

// fail prints field errors when err carries them and returns the mapped error.
func (s *session) fail(err error) error {
	if fe, ok := invoice.AsFieldErrors(err); ok {
		s.out.FieldErrors(fe)
	}
	return handleError(err, s.log)
}

func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	c := *cfg

	flags := cmd.Flags()
	if driver, _ := flags.GetString("driver"); driver != "" {
		c.StoreDriver = driver
		if !flags.Changed("store") && os.Getenv(config.EnvPrefix+"_STORE_PATH") == "" {
			c.StorePath = config.DefaultStorePath(driver)
		}
	}
	if path, _ := flags.GetString("store"); path != "" {
		c.StorePath = path
	}
	if dir, _ := flags.GetString("output-dir"); dir != "" {
		c.OutputDir = dir
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

// parseNumber accepts 1001 or INV-1001.
func parseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) > 4 && strings.EqualFold(s[:4], "INV-") {
		s = s[4:]
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid invoice number %q", s)
	}
	return n, nil
}

// handleError turns domain errors into single user-facing lines.
func handleError(err error, log zerolog.Logger) error {
	log.Debug().Err(err).Msg("Command failed")

	var serr *storage.Error
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("operation was canceled")
	case errors.As(err, new(invoice.FieldErrors)):
		return fmt.Errorf("please correct the fields above")
	case errors.Is(err, invoice.ErrNotFound):
		return fmt.Errorf("no invoice with that number")
	case errors.Is(err, invoice.ErrAlreadyPaid):
		return fmt.Errorf("that invoice is already marked as paid")
	case errors.Is(err, invoice.ErrNumberConflict):
		return fmt.Errorf("the next invoice number is already in use; pick a free one with \"invoicer numbering set\"")
	case errors.Is(err, invoice.ErrInvalidNumber):
		return fmt.Errorf("invoice numbers must be positive whole numbers")
	case errors.Is(err, app.ErrNotPaid):
		return fmt.Errorf("receipts are only available for paid invoices")
	case errors.Is(err, app.ErrNoEmail):
		return fmt.Errorf("this invoice has no client email")
	case errors.Is(err, profile.ErrInvalidLogo):
		return fmt.Errorf("could not read that image; use a PNG, JPEG, GIF, BMP or WebP file")
	case errors.Is(err, backup.ErrDecode):
		return fmt.Errorf("invalid backup file: %v", err)
	case errors.Is(err, storage.ErrCorrupt):
		return fmt.Errorf("the store file is unreadable; restore a backup or move it aside: %v", err)
	case errors.As(err, &serr):
		return fmt.Errorf("could not save your changes, nothing was modified: %v", err)
	default:
		return err
	}
}
