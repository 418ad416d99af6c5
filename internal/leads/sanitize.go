package leads

import (
	"regexp"
	"strings"
	"unicode"
)

const maxNameLength = 100

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	nonDigitRe     = regexp.MustCompile(`\D`)
	emailShapeRe   = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	emailStripRe   = regexp.MustCompile(`[^a-z0-9._%+\-@]`)
	scriptTagRe    = regexp.MustCompile(`(?i)<\s*/?\s*script`)
	jsURIRe        = regexp.MustCompile(`(?i)javascript\s*:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)
)

// SanitizeName trims, collapses internal whitespace, strips characters
// outside the permitted set (letters in any script, spaces, hyphens,
// apostrophes) and truncates to the name length limit. A result shorter
// than 2 characters fails the caller's length check.
func SanitizeName(s string) string {
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())

	if len([]rune(out)) > maxNameLength {
		// Trim again: the cut can land on a space.
		out = strings.TrimSpace(string([]rune(out)[:maxNameLength]))
	}
	return out
}

// SanitizePhone strips every non-digit character. Length and prefix are the
// validator's job.
func SanitizePhone(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// SanitizeEmail trims, lowercases and strips characters disallowed in an
// email address. Returns "" when the result does not match a basic email
// shape, which the caller treats as absent-or-invalid.
func SanitizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = emailStripRe.ReplaceAllString(s, "")
	if !emailShapeRe.MatchString(s) {
		return ""
	}
	return s
}

// htmlEscaper covers the five HTML-significant characters.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// SanitizeForHTML escapes user-controlled values immediately before
// interpolation into the owner email template. No business logic may run
// on the value after this step.
func SanitizeForHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ContainsDangerousContent is a coarse denylist safety net applied after
// sanitization. Schema-level stripping cannot enumerate every injection
// vector, so script tags, javascript: URIs, event-handler attributes and
// null bytes are rejected outright here.
func ContainsDangerousContent(s string) bool {
	if strings.ContainsRune(s, 0) {
		return true
	}
	return scriptTagRe.MatchString(s) || jsURIRe.MatchString(s) || eventHandlerRe.MatchString(s)
}
