// Package backup encodes and decodes the JSON snapshot of a whole invoicer
// state: the business profile, the invoice ledger and the invoice counter.
//
// Restoring is lenient about what a snapshot carries. A missing or
// non-array invoices field leaves the ledger alone, a counter that is not a
// positive integer is ignored, and a profile object is merged over the
// current profile so that older snapshots without newer fields still load.
// Anything that is present but malformed fails the whole decode.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"invoicer/pkg/models"
)

// Version is written into every snapshot.
const Version = 1

// Snapshot is the on-disk backup document.
type Snapshot struct {
	Version    int              `json:"version"`
	CreatedAt  string           `json:"createdAt"`
	Profile    models.Profile   `json:"profile"`
	Invoices   []models.Invoice `json:"invoices"`
	NextNumber int              `json:"nextNumber"`
}

// Contents is what a decoded snapshot asks to restore. Nil or zero fields
// mean the corresponding part of the state must be left unchanged.
type Contents struct {
	Version    int
	Profile    *models.Profile
	Invoices   []models.Invoice // nil unless the snapshot carried an array
	NextNumber int              // 0 unless the snapshot carried a positive integer
}

// HasInvoices reports whether the ledger should be replaced.
func (c Contents) HasInvoices() bool {
	return c.Invoices != nil
}

// Encode renders a snapshot with two-space indentation.
func Encode(profile models.Profile, invoices []models.Invoice, next int, createdAt time.Time) ([]byte, error) {
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	snap := Snapshot{
		Version:    Version,
		CreatedAt:  createdAt.UTC().Format(time.RFC3339),
		Profile:    profile,
		Invoices:   invoices,
		NextNumber: next,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("backup: encode: %w", err)
	}
	return data, nil
}

// Decode reads a snapshot. base is the profile that present profile keys
// are merged onto.
func Decode(data []byte, base models.Profile) (Contents, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		if err == nil {
			err = errors.New("top level is not an object")
		}
		return Contents{}, &DecodeError{Err: err}
	}

	var c Contents

	if raw, ok := top["version"]; ok && kind(raw) == '0' {
		var v float64
		if err := json.Unmarshal(raw, &v); err == nil {
			c.Version = int(v)
		}
	}

	if raw, ok := top["invoices"]; ok && kind(raw) == '[' {
		invoices := []models.Invoice{}
		if err := json.Unmarshal(raw, &invoices); err != nil {
			return Contents{}, &DecodeError{Field: "invoices", Err: err}
		}
		dups := lo.FindDuplicatesBy(invoices, func(inv models.Invoice) int { return inv.Number })
		if len(dups) > 0 {
			return Contents{}, &DecodeError{
				Field: "invoices",
				Err:   fmt.Errorf("%w: INV-%d", ErrDuplicateNumber, dups[0].Number),
			}
		}
		c.Invoices = invoices
	}

	if raw, ok := top["nextNumber"]; ok && kind(raw) == '0' {
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil && n >= 1 && n == math.Trunc(n) && n <= math.MaxInt32 {
			c.NextNumber = int(n)
		}
	}

	if raw, ok := top["profile"]; ok && kind(raw) == '{' {
		merged := base
		if base.Logo != nil {
			logo := *base.Logo
			merged.Logo = &logo
		}
		if err := json.Unmarshal(raw, &merged); err != nil {
			return Contents{}, &DecodeError{Field: "profile", Err: err}
		}
		c.Profile = &merged
	}

	return c, nil
}

// kind classifies a raw JSON value by its first byte: '{', '[', '"', 't',
// 'f', 'n' or '0' for numbers.
func kind(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	switch c := raw[0]; {
	case c == '-' || (c >= '0' && c <= '9'):
		return '0'
	default:
		return c
	}
}

// FileName returns the download name for a snapshot taken at t.
func FileName(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "invoicer-backup-" + stamp + ".json"
}
