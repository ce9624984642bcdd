package invoice

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"invoicer/pkg/models"
)

type clientAcc struct {
	name, email string
	total       decimal.Decimal
	outstanding decimal.Decimal
	overdue     int
	invoices    int
}

// Clients aggregates invoices per client as of asOf.
//
// Invoices are grouped by lower-cased email, falling back to the client
// name; records with neither are skipped. The first record seen for a key
// names the client. Paid invoices count towards Total only.
func (l *Ledger) Clients(asOf time.Time) []models.Client {
	return ClientsOf(l.Derived(asOf))
}

// ClientsOf aggregates already-derived entries. See Ledger.Clients.
func ClientsOf(entries []Entry) []models.Client {
	keyed := lo.Filter(entries, func(e Entry, _ int) bool {
		return clientKey(e.Invoice) != ""
	})
	groups := lo.GroupBy(keyed, func(e Entry) string {
		return clientKey(e.Invoice)
	})

	clients := make([]models.Client, 0, len(groups))
	for _, group := range groups {
		acc := clientAcc{
			name:  strings.TrimSpace(group[0].Client),
			email: strings.TrimSpace(group[0].Email),
		}
		if acc.name == "" {
			acc.name = "Unknown"
		}
		for _, e := range group {
			value := decimal.NewFromFloat(e.Total)
			if e.Total == 0 {
				value = decimal.NewFromFloat(e.Amount)
			}
			acc.total = acc.total.Add(value)
			acc.invoices++
			if e.Status != models.StatusPaid {
				acc.outstanding = acc.outstanding.Add(value)
			}
			if e.Status == models.StatusOverdue {
				acc.overdue++
			}
		}
		clients = append(clients, models.Client{
			Name:        acc.name,
			Email:       acc.email,
			Total:       acc.total.Round(MoneyPlaces).InexactFloat64(),
			Outstanding: acc.outstanding.Round(MoneyPlaces).InexactFloat64(),
			Overdue:     acc.overdue,
			Invoices:    acc.invoices,
		})
	}

	slices.SortStableFunc(clients, func(a, b models.Client) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})
	return clients
}

func clientKey(inv models.Invoice) string {
	if k := strings.ToLower(strings.TrimSpace(inv.Email)); k != "" {
		return k
	}
	return strings.ToLower(strings.TrimSpace(inv.Client))
}
