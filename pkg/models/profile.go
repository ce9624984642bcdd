package models

// Profile is the business configuration printed on every document.
type Profile struct {
	CompanyName string  `json:"companyName"`
	Address     string  `json:"address"` // Multi-line, one line per row on documents
	Bank        string  `json:"bank"`
	SortCode    string  `json:"sortCode"`
	Logo        *string `json:"logo"` // PNG data URL, null when unset
	VATRate     float64 `json:"vatRate"`
	VATNumber   string  `json:"vatNumber"`
}

// DefaultProfile is the profile used before the user saves one.
func DefaultProfile() Profile {
	return Profile{
		CompanyName: "Your Business",
		Address:     "1 High Street\nTown\nAB1 2CD",
		Bank:        "12345678",
		SortCode:    "00-00-00",
		VATRate:     20,
	}
}

// HasLogo reports whether a logo image is configured.
func (p Profile) HasLogo() bool {
	return p.Logo != nil && *p.Logo != ""
}

// Client is an aggregated view over the invoices billed to one client.
// It is derived from the ledger on demand and never stored.
type Client struct {
	Name        string
	Email       string
	Total       float64 // Sum of invoice totals
	Outstanding float64 // Sum of totals not yet paid
	Overdue     int     // Number of overdue invoices
	Invoices    int
}
