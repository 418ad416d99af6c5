package leads

import "errors"

var (
	// ErrNameTooShort is returned when the name has fewer than 2 characters after sanitization
	ErrNameTooShort = errors.New("name must be at least 2 characters")

	// ErrInvalidPhone is returned when the phone is not a 10-digit 05 mobile number
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidEmail is returned when a provided email fails the sanitized shape check
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidMortgageType is returned for values outside the enumerated set
	ErrInvalidMortgageType = errors.New("invalid mortgage type")

	// ErrHoneypotTripped marks bot traffic; its user-facing message is
	// identical to a generic validation failure so detection never leaks
	ErrHoneypotTripped = errors.New("honeypot field populated")

	// ErrDangerousContent is returned when the denylist safety net fires
	// after sanitization
	ErrDangerousContent = errors.New("dangerous content detected")
)

// User-facing messages, Hebrew like the rest of the site. Kept apart from
// the sentinel errors so internal detail never reaches the client.
const (
	MsgSuccess         = "הפרטים נשלחו בהצלחה, ניצור איתך קשר בהקדם"
	MsgNameTooShort    = "שם מלא חייב להכיל לפחות 2 תווים"
	MsgInvalidPhone    = "מספר טלפון לא תקין"
	MsgInvalidEmail    = "כתובת אימייל לא תקינה"
	MsgGenericError    = "אירעה שגיאה, אנא נסה שוב מאוחר יותר"
	MsgStorageError    = "אירעה שגיאה בשמירת הפרטים. אנא נסה שוב מאוחר יותר."
	MsgTooManyRequests = "יותר מדי בקשות. אנא נסה שוב מאוחר יותר."
)

// UserMessage maps a validation error to the message shown to the visitor.
// Honeypot and dangerous-content rejections deliberately reuse the generic
// message so bot detection is indistinguishable from a normal failure.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNameTooShort):
		return MsgNameTooShort
	case errors.Is(err, ErrInvalidPhone):
		return MsgInvalidPhone
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	default:
		return MsgGenericError
	}
}
