package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/storage"
)

func TestParseNumber(t *testing.T) {
	for in, want := range map[string]int{"1001": 1001, "INV-1001": 1001, "inv-7": 7, " 42 ": 42} {
		n, err := parseNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, n)
	}
	for _, in := range []string{"", "INV-", "0", "-3", "abc"} {
		_, err := parseNumber(in)
		assert.Error(t, err, in)
	}
}

func TestEffectiveConfig_FlagsOverride(t *testing.T) {
	cfg = &config.Config{
		StoreDriver:    storage.DriverFile,
		StorePath:      "/tmp/store.json",
		OutputDir:      ".",
		CurrencySymbol: "£",
		LogoWidth:      300,
		Timezone:       "UTC",
		Location:       time.UTC,
		LogLevel:       "warn",
		LogFormat:      "console",
	}
	t.Cleanup(func() { cfg = nil })

	c := &cobra.Command{}
	c.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, c.Flags().Parse([]string{"--driver", "memory", "--output-dir", "/tmp/out"}))

	got, err := effectiveConfig(c)
	require.NoError(t, err)
	assert.Equal(t, storage.DriverMemory, got.StoreDriver)
	assert.Equal(t, "/tmp/out", got.OutputDir)
	assert.Equal(t, storage.DriverFile, cfg.StoreDriver)
}

func TestHandleError(t *testing.T) {
	log := zerolog.Nop()
	wrapped := &invoice.LedgerError{Op: "MarkPaid", Number: 1001, Err: invoice.ErrAlreadyPaid}

	assert.EqualError(t, handleError(wrapped, log), "that invoice is already marked as paid")
	assert.EqualError(t, handleError(invoice.FieldErrors{"client": "x"}, log), "please correct the fields above")

	other := errors.New("boom")
	assert.Same(t, other, handleError(other, log))
}
