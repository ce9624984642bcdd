package models

import (
	"fmt"
	"strings"
)

// Status is the payment state of an invoice as shown to the user.
type Status string

const (
	StatusUnpaid  Status = "Unpaid"
	StatusOverdue Status = "Overdue"
	StatusPaid    Status = "Paid"
)

// ParseStatus accepts the three status names case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch {
	case strings.EqualFold(s, string(StatusUnpaid)):
		return StatusUnpaid, true
	case strings.EqualFold(s, string(StatusOverdue)):
		return StatusOverdue, true
	case strings.EqualFold(s, string(StatusPaid)):
		return StatusPaid, true
	}
	return "", false
}

type Invoice struct {
	// Identity
	Number int `json:"number"` // Sequential, unique within the ledger

	// Client
	Client string `json:"client"`
	Email  string `json:"email"`

	// Date in DD/MM/YYYY form, as entered
	Date string `json:"date"`

	// Amounts (decimal values; rounding happens in invoice.Compute)
	Amount    float64 `json:"amount"`    // Net amount before VAT
	ApplyVAT  bool    `json:"applyVAT"`  // Whether VAT was charged
	VATRate   float64 `json:"vatRate"`   // Percentage snapshot at creation, 0 when VAT not applied
	VATAmount float64 `json:"vatAmount"` // Derived
	Total     float64 `json:"total"`     // Derived, Amount + VATAmount

	Description string `json:"description"` // Goods / services supplied

	// Only Paid is set by the user; Unpaid/Overdue are re-derived from Date
	Status Status `json:"status"`
}

// Reference returns the printed invoice reference, e.g. INV-1001.
func (i Invoice) Reference() string {
	return fmt.Sprintf("INV-%d", i.Number)
}

// IsPaid reports whether the invoice reached the terminal Paid state.
func (i Invoice) IsPaid() bool {
	return i.Status == StatusPaid
}
