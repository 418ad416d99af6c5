package leads

import (
	"strings"
	"time"
)

// MortgageType enumerates the consultation tracks offered on the site.
type MortgageType string

const (
	MortgageNew       MortgageType = "new"
	MortgageRefinance MortgageType = "refinance"
	MortgageReverse   MortgageType = "reverse"
	MortgageOther     MortgageType = "other"
)

// Valid reports whether t is a member of the enumerated set.
func (t MortgageType) Valid() bool {
	switch t {
	case MortgageNew, MortgageRefinance, MortgageReverse, MortgageOther:
		return true
	}
	return false
}

// Label returns the Hebrew label used in stored rows and owner emails.
func (t MortgageType) Label() string {
	switch t {
	case MortgageNew:
		return "משכנתא חדשה"
	case MortgageRefinance:
		return "מיחזור משכנתא"
	case MortgageReverse:
		return "משכנתא הפוכה"
	default:
		return "אחר"
	}
}

// SubmitLeadRequest is the untrusted request body of POST /api/leads.
// The form posts fullName; older embeds post name. The website field is a
// honeypot: hidden in the markup, never filled by a real browser.
type SubmitLeadRequest struct {
	FullName     string `json:"fullName"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	MortgageType string `json:"mortgageType"`
	Website      string `json:"website"`
	Source       string `json:"source"`
	UTMSource    string `json:"utm_source"`
	UTMMedium    string `json:"utm_medium"`
	UTMCampaign  string `json:"utm_campaign"`
}

// SubmittedName returns whichever name field the client populated.
func (r *SubmitLeadRequest) SubmittedName() string {
	if strings.TrimSpace(r.FullName) != "" {
		return r.FullName
	}
	return r.Name
}

// Lead is a validated, sanitized submission ready for storage. Immutable
// once persisted except for Converted, which an external CRM process flips.
type Lead struct {
	ID           string       `json:"id"`
	FullName     string       `json:"full_name"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email,omitempty"`
	MortgageType MortgageType `json:"mortgage_type"`
	Source       string       `json:"source"`
	UTMSource    string       `json:"utm_source,omitempty"`
	UTMMedium    string       `json:"utm_medium,omitempty"`
	UTMCampaign  string       `json:"utm_campaign,omitempty"`
	IPAddress    string       `json:"ip_address,omitempty"`
	UserAgent    string       `json:"user_agent,omitempty"`
	Converted    bool         `json:"converted"`
	CreatedAt    time.Time    `json:"created_at"`
}
