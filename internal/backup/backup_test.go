package backup

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

func sampleInvoices() []models.Invoice {
	return []models.Invoice{
		{Number: 1002, Client: "Beta", Email: "b@beta.test", Date: "02/03/2024", Amount: 10, ApplyVAT: true, VATRate: 20, VATAmount: 2, Total: 12, Description: "Hosting", Status: models.StatusPaid},
		{Number: 1001, Client: "Acme", Email: "a@acme.test", Date: "01/03/2024", Amount: 99.99, Total: 99.99, Description: "Work", Status: models.StatusUnpaid},
	}
}

func TestEncode(t *testing.T) {
	created := time.Date(2024, 3, 8, 14, 5, 9, 0, time.FixedZone("BST", 3600))
	data, err := Encode(models.DefaultProfile(), sampleInvoices(), 1003, created)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "{\n  \"version\": 1,\n  \"createdAt\": \"2024-03-08T13:05:09Z\","))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, Version, snap.Version)
	assert.Equal(t, 1003, snap.NextNumber)
	assert.Len(t, snap.Invoices, 2)
}

func TestEncode_NilInvoicesIsEmptyArray(t *testing.T) {
	data, err := Encode(models.DefaultProfile(), nil, 1001, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"invoices": []`)
}

func TestRoundTrip(t *testing.T) {
	logo := "data:image/png;base64,AAAA"
	p := models.DefaultProfile()
	p.CompanyName = "Acme Trading"
	p.VATNumber = "GB123456789"

	data, err := Encode(p, sampleInvoices(), 1003, time.Now())
	require.NoError(t, err)

	base := models.DefaultProfile()
	base.Logo = &logo
	base.Bank = "99999999"

	c, err := Decode(data, base)
	require.NoError(t, err)
	require.NotNil(t, c.Profile)
	assert.Equal(t, p, *c.Profile)
	assert.Equal(t, sampleInvoices(), c.Invoices)
	assert.Equal(t, 1003, c.NextNumber)
	assert.Equal(t, "data:image/png;base64,AAAA", *base.Logo)
}

func TestDecode_PartialSnapshot(t *testing.T) {
	base := models.DefaultProfile()

	tests := []struct {
		name         string
		doc          string
		wantInvoices bool
		wantNext     int
		wantProfile  *models.Profile
	}{
		{"empty object", `{}`, false, 0, nil},
		{"invoices not an array", `{"invoices": {"a": 1}}`, false, 0, nil},
		{"empty invoices", `{"invoices": []}`, true, 0, nil},
		{"counter as string", `{"nextNumber": "1005"}`, false, 0, nil},
		{"counter zero", `{"nextNumber": 0}`, false, 0, nil},
		{"counter fractional", `{"nextNumber": 12.5}`, false, 0, nil},
		{"counter valid", `{"nextNumber": 42}`, false, 42, nil},
		{"profile not an object", `{"profile": "Acme"}`, false, 0, nil},
		{"unknown fields", `{"theme": "dark", "extra": [1,2]}`, false, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode([]byte(tt.doc), base)
			require.NoError(t, err)
			assert.Equal(t, tt.wantInvoices, c.HasInvoices())
			assert.Equal(t, tt.wantNext, c.NextNumber)
			assert.Equal(t, tt.wantProfile, c.Profile)
		})
	}
}

func TestDecode_ProfileMergesOntoBase(t *testing.T) {
	base := models.DefaultProfile()
	base.VATNumber = "GB1"

	c, err := Decode([]byte(`{"profile": {"companyName": "New Co", "vatRate": 5}}`), base)
	require.NoError(t, err)
	require.NotNil(t, c.Profile)

	want := base
	want.CompanyName = "New Co"
	want.VATRate = 5
	assert.Equal(t, want, *c.Profile)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"not json", `not json`, ""},
		{"array", `[1, 2]`, ""},
		{"string", `"backup"`, ""},
		{"null", `null`, ""},
		{"bad invoice", `{"invoices": [{"number": "one"}]}`, "invoices"},
		{"bad profile", `{"profile": {"vatRate": "twenty"}}`, "profile"},
		{"duplicate number", `{"invoices": [{"number": 5, "client": "a"}, {"number": 5, "client": "b"}]}`, "invoices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), models.DefaultProfile())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestDecode_DuplicateNumber(t *testing.T) {
	_, err := Decode([]byte(`{"invoices": [{"number": 5}, {"number": 6}, {"number": 5}]}`), models.DefaultProfile())
	assert.ErrorIs(t, err, ErrDuplicateNumber)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "INV-5")
}

func TestDecode_NewerVersionAccepted(t *testing.T) {
	c, err := Decode([]byte(`{"version": 3, "nextNumber": 7}`), models.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Version)
	assert.Equal(t, 7, c.NextNumber)
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 3, 8, 14, 5, 9, 123000000, time.UTC)
	assert.Equal(t, "invoicer-backup-2024-03-08T14-05-09.json", FileName(ts))
}
