package leads

import (
	"regexp"
	"strings"
)

// Israeli mobile numbers: exactly 10 digits with the 05 prefix. A different
// locale must replace this rule, not generalize it.
var phoneRe = regexp.MustCompile(`^05\d{8}$`)

// Validate is the strict server-side profile and the sole source of truth;
// it never assumes client-side validation ran. It checks fields in a fixed
// order (name, phone, email, mortgage type, honeypot) and returns the first
// failing rule only. On success it returns the sanitized canonical lead,
// without storage metadata.
func (r *SubmitLeadRequest) Validate() (*Lead, error) {
	name := SanitizeName(r.SubmittedName())
	if len([]rune(name)) < 2 {
		return nil, ErrNameTooShort
	}

	phone := SanitizePhone(r.Phone)
	if !phoneRe.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	email := ""
	if strings.TrimSpace(r.Email) != "" {
		email = SanitizeEmail(r.Email)
		if email == "" {
			return nil, ErrInvalidEmail
		}
	}

	mortgageType := MortgageType(strings.ToLower(strings.TrimSpace(r.MortgageType)))
	if !mortgageType.Valid() {
		return nil, ErrInvalidMortgageType
	}

	if strings.TrimSpace(r.Website) != "" {
		return nil, ErrHoneypotTripped
	}

	// Denylist safety net, independent of the per-field stripping above.
	for _, v := range []string{name, email, r.Source, r.UTMSource, r.UTMMedium, r.UTMCampaign} {
		if ContainsDangerousContent(v) {
			return nil, ErrDangerousContent
		}
	}

	source := strings.TrimSpace(r.Source)
	if source == "" {
		source = "website"
	}

	return &Lead{
		FullName:     name,
		Phone:        phone,
		Email:        email,
		MortgageType: mortgageType,
		Source:       source,
		UTMSource:    strings.TrimSpace(r.UTMSource),
		UTMMedium:    strings.TrimSpace(r.UTMMedium),
		UTMCampaign:  strings.TrimSpace(r.UTMCampaign),
	}, nil
}
