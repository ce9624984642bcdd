package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDraft() Draft {
	return Draft{
		Client:      "Acme Ltd",
		Email:       "accounts@acme.test",
		Amount:      "100",
		Date:        "08/03/2024",
		Description: "Consulting",
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		want   FieldErrors
	}{
		{"valid", func(*Draft) {}, nil},
		{"missing client", func(d *Draft) { d.Client = "" }, FieldErrors{"client": "Client name is required."}},
		{"missing email", func(d *Draft) { d.Email = "" }, FieldErrors{"email": "Client email is required."}},
		{"bad email", func(d *Draft) { d.Email = "acme.test" }, FieldErrors{"email": "Enter a valid email."}},
		{"email with space", func(d *Draft) { d.Email = "a b@acme.test" }, FieldErrors{"email": "Enter a valid email."}},
		{"missing amount", func(d *Draft) { d.Amount = "" }, FieldErrors{"amount": "Enter a valid amount."}},
		{"zero amount", func(d *Draft) { d.Amount = "0" }, FieldErrors{"amount": "Enter a valid amount."}},
		{"negative amount", func(d *Draft) { d.Amount = "-5" }, FieldErrors{"amount": "Enter a valid amount."}},
		{"rounds to zero", func(d *Draft) { d.Amount = "0.004" }, FieldErrors{"amount": "Enter a valid amount."}},
		{"rounds up to a penny", func(d *Draft) { d.Amount = "0.005" }, nil},
		{"huge amount", func(d *Draft) { d.Amount = "1e400" }, FieldErrors{"amount": "Enter a valid amount."}},
		{"at the cap", func(d *Draft) { d.Amount = "1000000000000" }, FieldErrors{"amount": "Enter a valid amount."}},
		{"below the cap", func(d *Draft) { d.Amount = "999999999999.99" }, nil},
		{"text amount", func(d *Draft) { d.Amount = "ten" }, FieldErrors{"amount": "Enter a valid amount."}},
		{"iso date", func(d *Draft) { d.Date = "2024-03-08" }, FieldErrors{"date": "Enter a valid UK date (DD/MM/YYYY)."}},
		{"impossible date", func(d *Draft) { d.Date = "30/02/2024" }, FieldErrors{"date": "Enter a valid UK date (DD/MM/YYYY)."}},
		{"missing description", func(d *Draft) { d.Description = "" }, FieldErrors{"description": "Please describe the goods/services supplied."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			assert.Equal(t, tt.want, d.Normalize().Validate())
		})
	}
}

func TestDraftValidate_ReportsEveryField(t *testing.T) {
	fe := Draft{}.Validate()
	assert.Equal(t, []string{"amount", "client", "date", "description", "email"}, fe.Fields())
}

func TestDraftNormalize(t *testing.T) {
	d := Draft{Client: "  Acme ", Email: " a@b.co ", Amount: " 5 ", Date: " 1/2/2024 ", Description: "\tWork\n"}.Normalize()
	assert.Equal(t, Draft{Client: "Acme", Email: "a@b.co", Amount: "5", Date: "1/2/2024", Description: "Work"}, d)
}

func TestDraftValidate_WhitespaceOnlyIsMissing(t *testing.T) {
	d := validDraft()
	d.Client = "   "
	assert.Contains(t, d.Normalize().Validate(), "client")
}
