package invoice

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxAmount bounds the net amount of a single invoice, exclusive.
var MaxAmount = decimal.New(1, 12)

// emailShape is deliberately loose: something@something.something, no spaces.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

// Draft is the user input for a new invoice. Amount and Date are kept as
// entered so that malformed input can be reported per field.
type Draft struct {
	Client      string `json:"client" validate:"required"`
	Email       string `json:"email" validate:"required,email_shape"`
	Amount      string `json:"amount" validate:"required,positive_amount"`
	Date        string `json:"date" validate:"required,uk_date"`
	Description string `json:"description" validate:"required"`
	ApplyVAT    bool   `json:"applyVAT"`
}

// messages maps field and failing tag to the message shown next to the input.
var messages = map[string]map[string]string{
	"client": {
		"required": "Client name is required.",
	},
	"email": {
		"required":    "Client email is required.",
		"email_shape": "Enter a valid email.",
	},
	"amount": {
		"*": "Enter a valid amount.",
	},
	"date": {
		"*": "Enter a valid UK date (DD/MM/YYYY).",
	},
	"description": {
		"required": "Please describe the goods/services supplied.",
	},
}

// Normalize trims surrounding whitespace from every text field.
func (d Draft) Normalize() Draft {
	d.Client = strings.TrimSpace(d.Client)
	d.Email = strings.TrimSpace(d.Email)
	d.Amount = strings.TrimSpace(d.Amount)
	d.Date = strings.TrimSpace(d.Date)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Validate checks a normalized draft and returns one message per invalid
// field, or nil when the draft is acceptable.
func (d Draft) Validate() FieldErrors {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"draft": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	byTag := messages[field]
	if m, ok := byTag[tag]; ok {
		return m
	}
	if m, ok := byTag["*"]; ok {
		return m
	}
	return "Invalid value."
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages line up with inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	mustRegister(v, "positive_amount", func(fl validator.FieldLevel) bool {
		amount, ok := ParseAmount(fl.Field().String())
		return ok && validAmount(amount)
	})
	mustRegister(v, "uk_date", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})
	return v
}

// validAmount reports whether amount is still positive once rounded to
// money places and below MaxAmount.
func validAmount(amount decimal.Decimal) bool {
	rounded := amount.Round(MoneyPlaces)
	return rounded.IsPositive() && rounded.LessThan(MaxAmount)
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
