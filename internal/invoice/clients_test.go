package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoicer/pkg/models"
)

func TestClients(t *testing.T) {
	l := seededLedger(t)
	got := l.Clients(day(2024, time.March, 8))

	assert.Equal(t, []models.Client{
		{Name: "Acme", Email: "acme@acme.test", Total: 72, Outstanding: 60, Overdue: 1, Invoices: 2},
		{Name: "Beta", Email: "pay@beta.test", Total: 20, Outstanding: 20, Overdue: 0, Invoices: 1},
	}, got)
}

func TestClientsOf(t *testing.T) {
	entries := []Entry{
		{Invoice: models.Invoice{Client: "zed", Amount: 5, Status: models.StatusUnpaid}},
		{Invoice: models.Invoice{Client: "", Email: "", Amount: 99, Status: models.StatusUnpaid}},
		{Invoice: models.Invoice{Client: "", Email: "anon@x.test", Amount: 1.1, Total: 0, Status: models.StatusPaid}},
		{Invoice: models.Invoice{Client: "Zed", Amount: 2.2, Total: 2.2, Status: models.StatusOverdue}, OverdueDays: 9},
	}

	got := ClientsOf(entries)
	assert.Equal(t, []models.Client{
		{Name: "Unknown", Email: "anon@x.test", Total: 1.1, Outstanding: 0, Invoices: 1},
		{Name: "zed", Total: 7.2, Outstanding: 7.2, Overdue: 1, Invoices: 2},
	}, got)
}
