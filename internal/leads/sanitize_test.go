package leads

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and collapses whitespace", "  דנה   לוי  ", "דנה לוי"},
		{"keeps hyphens and apostrophes", "Jean-Pierre O'Brien", "Jean-Pierre O'Brien"},
		{"strips digits and symbols", "Dana123 <Levi>!", "Dana Levi"},
		{"strips control characters", "Dana\x00\x1fLevi", "DanaLevi"},
		{"non-latin preserved", "אברהם בן-דוד", "אברהם בן-דוד"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	long := strings.Repeat("א", 150)
	got := SanitizeName(long)
	if n := len([]rune(got)); n != 100 {
		t.Errorf("expected 100 runes after truncation, got %d", n)
	}
}

func TestSanitizeNameIdempotent(t *testing.T) {
	inputs := []string{"  דנה   לוי  ", "Jean-Pierre O'Brien", "Dana <b>Levi</b>", strings.Repeat("x y ", 60)}
	for _, in := range inputs {
		once := SanitizeName(in)
		if twice := SanitizeName(once); twice != once {
			t.Errorf("SanitizeName not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"050-123-4567", "0501234567"},
		{"(050) 123 4567", "0501234567"},
		{"0501234567", "0501234567"},
		{"+972501234567", "972501234567"},
		{"abc", ""},
	}

	for _, tt := range tests {
		if got := SanitizePhone(tt.in); got != tt.want {
			t.Errorf("SanitizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Dana@Example.COM ", "dana@example.com"},
		{"dana+tag@example.co.il", "dana+tag@example.co.il"},
		{"not-an-email", ""},
		{"dana@localhost", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeEmail(tt.in); got != tt.want {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeForHTML(t *testing.T) {
	in := `<script>alert("x&y's")</script>`
	got := SanitizeForHTML(in)

	for _, forbidden := range []string{"<", ">", `"`, "'"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("escaped output still contains %q: %s", forbidden, got)
		}
	}
	// Every & must belong to an entity.
	stripped := strings.NewReplacer("&amp;", "", "&lt;", "", "&gt;", "", "&quot;", "", "&#39;", "").Replace(got)
	if strings.Contains(stripped, "&") {
		t.Errorf("unescaped ampersand in %s", got)
	}
}

func TestContainsDangerousContent(t *testing.T) {
	dangerous := []string{
		"<script>alert(1)</script>",
		"< SCRIPT src=x>",
		"javascript:alert(1)",
		"JavaScript : void(0)",
		`<img onerror=alert(1)>`,
		"has\x00null",
	}
	for _, s := range dangerous {
		if !ContainsDangerousContent(s) {
			t.Errorf("expected %q to be flagged", s)
		}
	}

	safe := []string{"דנה לוי", "dana@example.com", "on time delivery", "conscript"}
	for _, s := range safe {
		if ContainsDangerousContent(s) {
			t.Errorf("did not expect %q to be flagged", s)
		}
	}
}
