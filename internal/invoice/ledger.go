// Package invoice holds the invoice ledger and the pure rules around it.
//
// The ledger owns the collection of issued invoices and the counter that
// hands out the next invoice number. Every mutation is written through the
// storage port in a single atomic Save before it becomes visible in memory,
// so a failed write leaves the ledger exactly as it was.
//
// Status handling:
//   - Paid is the only status a user sets, and it is terminal
//   - Unpaid and Overdue are re-derived from the invoice date on every read
//   - An invoice becomes Overdue on the 7th calendar day after its date
//
// Money:
//   - Amounts are stored as decimal numbers with two places
//   - VAT is rounded half-up once, the total is net plus the rounded VAT
package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"invoicer/internal/storage"
	"invoicer/pkg/models"
)

// DefaultNextNumber is the first invoice number of a fresh ledger.
const DefaultNextNumber = 1001

// Filter narrows List results. Zero values match everything.
type Filter struct {
	// Status must equal the derived status when set.
	Status models.Status

	// Query is matched case-insensitively against client, email,
	// INV-<number> and description.
	Query string
}

// Entry is an invoice with its derived status applied.
type Entry struct {
	models.Invoice

	// OverdueDays is set for Overdue entries only.
	OverdueDays int
}

// Ledger is the stateful invoice collection.
type Ledger struct {
	store storage.Store
	log   zerolog.Logger

	mu       sync.RWMutex
	invoices []models.Invoice // newest first
	next     int
}

// Open loads the ledger from store. Missing keys yield an empty ledger with
// the default counter; corrupt values are logged and treated as missing.
func Open(ctx context.Context, store storage.Store, log zerolog.Logger) (*Ledger, error) {
	l := &Ledger{store: store, log: log}
	if err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload replaces the in-memory state with what the store currently holds.
func (l *Ledger) Reload(ctx context.Context) error {
	const op = "Reload"

	invoices, err := l.loadInvoices(ctx)
	if err != nil {
		return newLedgerError(op, 0, err)
	}
	next, err := l.loadNextNumber(ctx)
	if err != nil {
		return newLedgerError(op, 0, err)
	}

	l.mu.Lock()
	l.invoices = invoices
	l.next = next
	l.mu.Unlock()

	l.log.Debug().
		Int("invoices", len(invoices)).
		Int("next_number", next).
		Msg("Ledger loaded")
	return nil
}

func (l *Ledger) loadInvoices(ctx context.Context) ([]models.Invoice, error) {
	raw, err := l.store.Load(ctx, storage.KeyInvoices)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.Invoice{}, nil
	}
	if err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		l.log.Warn().Err(err).Msg("Stored invoices are unreadable, starting with an empty ledger")
		return []models.Invoice{}, nil
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}

func (l *Ledger) loadNextNumber(ctx context.Context) (int, error) {
	raw, err := l.store.Load(ctx, storage.KeyNextNumber)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultNextNumber, nil
	}
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || n < 1 {
		l.log.Warn().Str("value", string(raw)).Msg("Stored invoice counter is invalid, using default")
		return DefaultNextNumber, nil
	}
	return n, nil
}

// Create validates draft, assigns the next number and records a new Unpaid
// invoice. profileVATRate is the rate snapshotted when draft.ApplyVAT is set.
//
// Validation failures return FieldErrors and change nothing.
func (l *Ledger) Create(ctx context.Context, draft Draft, profileVATRate float64) (models.Invoice, error) {
	const op = "Create"

	draft = draft.Normalize()
	if fe := draft.Validate(); fe != nil {
		return models.Invoice{}, fe
	}

	// Validate already accepted both.
	net, _ := ParseAmount(draft.Amount)
	issued, _ := ParseDate(draft.Date)

	b := Compute(net, decimal.NewFromFloat(profileVATRate), draft.ApplyVAT)

	l.mu.Lock()
	defer l.mu.Unlock()

	number := l.next
	if l.indexOf(number) >= 0 {
		return models.Invoice{}, newLedgerError(op, number, ErrNumberConflict)
	}

	inv := models.Invoice{
		Number:      number,
		Client:      draft.Client,
		Email:       draft.Email,
		Date:        FormatDate(issued),
		Amount:      net.Round(MoneyPlaces).InexactFloat64(),
		ApplyVAT:    draft.ApplyVAT,
		VATRate:     b.Rate.InexactFloat64(),
		VATAmount:   b.VAT.InexactFloat64(),
		Total:       b.Total.InexactFloat64(),
		Description: draft.Description,
		Status:      models.StatusUnpaid,
	}

	invoices := append([]models.Invoice{inv}, l.invoices...)
	if err := l.persist(ctx, invoices, number+1); err != nil {
		return models.Invoice{}, newLedgerError(op, number, err)
	}
	l.invoices = invoices
	l.next = number + 1

	l.log.Info().
		Int("number", inv.Number).
		Str("client", inv.Client).
		Str("total", Money(inv.Total)).
		Msg("Invoice created")
	return inv, nil
}

// MarkPaid moves an Unpaid or Overdue invoice to Paid.
func (l *Ledger) MarkPaid(ctx context.Context, number int, asOf time.Time) (models.Invoice, error) {
	const op = "MarkPaid"

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(number)
	if i < 0 {
		return models.Invoice{}, newLedgerError(op, number, ErrNotFound)
	}
	if DeriveStatus(l.invoices[i], asOf).Status == models.StatusPaid {
		return models.Invoice{}, newLedgerError(op, number, ErrAlreadyPaid)
	}

	invoices := slices.Clone(l.invoices)
	invoices[i].Status = models.StatusPaid
	if err := l.persist(ctx, invoices, l.next); err != nil {
		return models.Invoice{}, newLedgerError(op, number, err)
	}
	l.invoices = invoices

	l.log.Info().Int("number", number).Msg("Invoice marked as paid")
	return invoices[i], nil
}

// SetNextNumber sets the counter used by the next Create. It is not checked
// against existing numbers; Create refuses a colliding number instead.
func (l *Ledger) SetNextNumber(ctx context.Context, n int) error {
	const op = "SetNextNumber"

	if n < 1 {
		return newLedgerError(op, 0, ErrInvalidNumber)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Save(ctx, CounterEntry(n)); err != nil {
		return newLedgerError(op, 0, err)
	}
	l.next = n

	l.log.Info().Int("next_number", n).Msg("Invoice counter updated")
	return nil
}

// NextNumber returns the number the next Create will assign.
func (l *Ledger) NextNumber() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.next
}

// Get returns the stored invoice carrying number.
func (l *Ledger) Get(number int) (models.Invoice, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.indexOf(number)
	if i < 0 {
		return models.Invoice{}, false
	}
	return l.invoices[i], true
}

// Invoices returns a copy of the stored invoices, newest first, with their
// stored status.
func (l *Ledger) Invoices() []models.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.invoices)
}

// Derived returns every invoice in stored order with its status derived
// as of asOf.
func (l *Ledger) Derived(asOf time.Time) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return lo.Map(l.invoices, func(inv models.Invoice, _ int) Entry {
		return derive(inv, asOf)
	})
}

// List returns the invoices matching f, ordered by number descending.
func (l *Ledger) List(f Filter, asOf time.Time) []Entry {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	entries := lo.Filter(l.Derived(asOf), func(e Entry, _ int) bool {
		if f.Status != "" && e.Status != f.Status {
			return false
		}
		return query == "" || matches(e.Invoice, query)
	})

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Number - a.Number
	})
	return entries
}

// OverdueCount returns how many invoices derive Overdue as of asOf.
func (l *Ledger) OverdueCount(asOf time.Time) int {
	return lo.CountBy(l.Derived(asOf), func(e Entry) bool {
		return e.Status == models.StatusOverdue
	})
}

func derive(inv models.Invoice, asOf time.Time) Entry {
	d := DeriveStatus(inv, asOf)
	inv.Status = d.Status
	return Entry{Invoice: inv, OverdueDays: d.OverdueDays}
}

func matches(inv models.Invoice, lowerQuery string) bool {
	return lo.SomeBy([]string{
		inv.Client,
		inv.Email,
		inv.Reference(),
		inv.Description,
	}, func(s string) bool {
		return strings.Contains(strings.ToLower(s), lowerQuery)
	})
}

// indexOf must be called with l.mu held.
func (l *Ledger) indexOf(number int) int {
	return slices.IndexFunc(l.invoices, func(inv models.Invoice) bool {
		return inv.Number == number
	})
}

func (l *Ledger) persist(ctx context.Context, invoices []models.Invoice, next int) error {
	entry, err := InvoicesEntry(invoices)
	if err != nil {
		return err
	}
	return l.store.Save(ctx, entry, CounterEntry(next))
}

// InvoicesEntry encodes invoices as the store value under KeyInvoices.
func InvoicesEntry(invoices []models.Invoice) (storage.Entry, error) {
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	raw, err := json.Marshal(invoices)
	if err != nil {
		return storage.Entry{}, err
	}
	return storage.Entry{Key: storage.KeyInvoices, Value: raw}, nil
}

// CounterEntry encodes n as the store value under KeyNextNumber.
func CounterEntry(n int) storage.Entry {
	return storage.Entry{Key: storage.KeyNextNumber, Value: []byte(strconv.Itoa(n))}
}
