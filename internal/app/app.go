// Package app wires storage, the ledger, the profile and the document
// renderers into the operations exposed by the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"invoicer/internal/backup"
	"invoicer/internal/config"
	"invoicer/internal/document"
	"invoicer/internal/export"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/profile"
	"invoicer/internal/render"
	"invoicer/internal/storage"
	"invoicer/pkg/models"
)

// App is an open invoicer workspace.
type App struct {
	Config   *config.Config
	Store    storage.Store
	Ledger   *invoice.Ledger
	Profiles *profile.Service
	Docs     *document.Renderer

	// Clock returns the current instant; Now converts it to the configured zone.
	Clock func() time.Time

	log zerolog.Logger
}

// Mail is a prepared email: the mailto link plus the PDF to attach by hand.
type Mail struct {
	To       string
	Subject  string
	Body     string
	Link     string
	Document document.Document
}

// Open opens the configured store and loads the workspace.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := storage.Open(cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	a, err := New(ctx, cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

// New loads a workspace from an already open store.
func New(ctx context.Context, cfg *config.Config, store storage.Store) (*App, error) {
	ledger, err := invoice.Open(ctx, store, logger.WithComponent("ledger"))
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Store:    store,
		Ledger:   ledger,
		Profiles: profile.NewService(store, logger.WithComponent("profile")),
		Docs:     document.NewRenderer(cfg.CurrencySymbol, logger.WithComponent("document")),
		Clock:    time.Now,
		log:      logger.WithComponent("app"),
	}
	a.log.Debug().
		Str("driver", cfg.StoreDriver).
		Str("path", cfg.StorePath).
		Msg("Workspace opened")
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// Now is the current time in the configured reference zone. Calendar-day
// decisions such as overdue status use its date.
func (a *App) Now() time.Time {
	now := a.Clock()
	if a.Config.Location != nil {
		now = now.In(a.Config.Location)
	}
	return now
}

// Today is the current date as DD/MM/YYYY.
func (a *App) Today() string {
	return invoice.FormatDate(a.Now())
}

// CreateInvoice records a new invoice using the profile's VAT rate.
func (a *App) CreateInvoice(ctx context.Context, d invoice.Draft) (models.Invoice, error) {
	p, err := a.Profiles.Load(ctx)
	if err != nil {
		return models.Invoice{}, err
	}
	return a.Ledger.Create(ctx, d, p.VATRate)
}

// MarkPaid marks invoice n as paid today.
func (a *App) MarkPaid(ctx context.Context, n int) (models.Invoice, error) {
	return a.Ledger.MarkPaid(ctx, n, a.Now())
}

// List returns the filtered invoice list as of today.
func (a *App) List(f invoice.Filter) []invoice.Entry {
	return a.Ledger.List(f, a.Now())
}

// Clients returns the client summary as of today.
func (a *App) Clients() []models.Client {
	return a.Ledger.Clients(a.Now())
}

// Entry returns invoice n with its status derived as of today.
func (a *App) Entry(n int) (invoice.Entry, error) {
	for _, e := range a.Ledger.Derived(a.Now()) {
		if e.Number == n {
			return e, nil
		}
	}
	return invoice.Entry{}, &invoice.LedgerError{Op: "Get", Number: n, Err: invoice.ErrNotFound}
}

// InvoicePDF renders invoice n as it stands today.
func (a *App) InvoicePDF(ctx context.Context, n int) (document.Document, error) {
	e, err := a.Entry(n)
	if err != nil {
		return document.Document{}, err
	}
	p, err := a.Profiles.Load(ctx)
	if err != nil {
		return document.Document{}, err
	}
	return a.Docs.Invoice(p, e.Invoice)
}

// ReceiptPDF renders the receipt for paid invoice n, dated today.
func (a *App) ReceiptPDF(ctx context.Context, n int) (document.Document, error) {
	e, err := a.Entry(n)
	if err != nil {
		return document.Document{}, err
	}
	if e.Status != models.StatusPaid {
		return document.Document{}, fmt.Errorf("%s: %w", e.Reference(), ErrNotPaid)
	}
	p, err := a.Profiles.Load(ctx)
	if err != nil {
		return document.Document{}, err
	}
	return a.Docs.Receipt(p, e.Invoice, a.Now())
}

// InvoiceMail prepares the invoice email for n.
func (a *App) InvoiceMail(ctx context.Context, n int) (Mail, error) {
	return a.mail(ctx, n, false)
}

// ReceiptMail prepares the receipt email for paid invoice n.
func (a *App) ReceiptMail(ctx context.Context, n int) (Mail, error) {
	return a.mail(ctx, n, true)
}

func (a *App) mail(ctx context.Context, n int, receipt bool) (Mail, error) {
	e, err := a.Entry(n)
	if err != nil {
		return Mail{}, err
	}
	if e.Email == "" {
		return Mail{}, fmt.Errorf("%s: %w", e.Reference(), ErrNoEmail)
	}
	p, err := a.Profiles.Load(ctx)
	if err != nil {
		return Mail{}, err
	}

	m := Mail{To: e.Email}
	if receipt {
		m.Document, err = a.ReceiptPDF(ctx, n)
		m.Subject, m.Body = document.ReceiptSubject(p, e.Invoice), document.ReceiptBody
	} else {
		m.Document, err = a.InvoicePDF(ctx, n)
		m.Subject, m.Body = document.InvoiceSubject(p, e.Invoice), document.InvoiceBody
	}
	if err != nil {
		return Mail{}, err
	}
	m.Link = document.MailtoLink(m.To, m.Subject, m.Body)
	return m, nil
}

// ExportCSV renders every invoice with today's derived status.
func (a *App) ExportCSV() (name, text string) {
	now := a.Now()
	rows := lo.Map(a.Ledger.Derived(now), func(e invoice.Entry, _ int) models.Invoice {
		return e.Invoice
	})
	return export.FileName(now), export.CSV(rows)
}

// Backup snapshots the whole workspace.
func (a *App) Backup(ctx context.Context) (name string, data []byte, err error) {
	p, err := a.Profiles.Load(ctx)
	if err != nil {
		return "", nil, err
	}
	now := a.Now()
	data, err = backup.Encode(p, a.Ledger.Invoices(), a.Ledger.NextNumber(), now)
	if err != nil {
		return "", nil, err
	}
	return backup.FileName(now), data, nil
}

// Restore applies a snapshot. Everything it carries is written in one
// atomic save; on any error the workspace is left untouched.
func (a *App) Restore(ctx context.Context, data []byte) (backup.Contents, error) {
	base, err := a.Profiles.Load(ctx)
	if err != nil {
		return backup.Contents{}, err
	}
	c, err := backup.Decode(data, base)
	if err != nil {
		return backup.Contents{}, err
	}
	if c.Version > backup.Version {
		a.log.Warn().Int("version", c.Version).Msg("Restoring a backup written by a newer version")
	}

	var entries []storage.Entry
	if c.Profile != nil {
		if err := profile.Validate(*c.Profile); err != nil {
			return backup.Contents{}, err
		}
		entry, err := profile.Entry(*c.Profile)
		if err != nil {
			return backup.Contents{}, err
		}
		entries = append(entries, entry)
	}
	if c.HasInvoices() {
		entry, err := invoice.InvoicesEntry(c.Invoices)
		if err != nil {
			return backup.Contents{}, err
		}
		entries = append(entries, entry)
	}
	if c.NextNumber > 0 {
		entries = append(entries, invoice.CounterEntry(c.NextNumber))
	}
	if len(entries) == 0 {
		return c, nil
	}

	if err := a.Store.Save(ctx, entries...); err != nil {
		return backup.Contents{}, fmt.Errorf("restore: %w", err)
	}
	if err := a.Ledger.Reload(ctx); err != nil {
		return backup.Contents{}, err
	}

	a.log.Info().
		Bool("profile", c.Profile != nil).
		Int("invoices", len(c.Invoices)).
		Int("next_number", c.NextNumber).
		Msg("Backup restored")
	return c, nil
}

// Theme returns the stored terminal theme, light by default.
func (a *App) Theme(ctx context.Context) render.Theme {
	raw, err := a.Store.Load(ctx, storage.KeyTheme)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.log.Warn().Err(err).Msg("Failed to load theme")
		}
		return render.ThemeLight
	}
	t, ok := render.ParseTheme(string(raw))
	if !ok {
		return render.ThemeLight
	}
	return t
}

// SetTheme stores the terminal theme.
func (a *App) SetTheme(ctx context.Context, t render.Theme) error {
	return a.Store.Save(ctx, storage.Entry{Key: storage.KeyTheme, Value: []byte(t)})
}

// WriteOutput writes data to name inside the configured output directory
// and returns the full path.
func (a *App) WriteOutput(name string, data []byte) (string, error) {
	dir := a.Config.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.log.Info().Str("path", path).Int("bytes", len(data)).Msg("File written")
	return path, nil
}
