package abuse

import (
	"net/http"
	"net/url"
	"strings"
)

// OriginGuard verifies the Origin/Referer header against an allow-list.
// Active only in production mode with a configured allow-list; skipped
// otherwise to ease local testing.
type OriginGuard struct {
	allowed map[string]struct{}
	active  bool
}

// NewOriginGuard builds a guard from the configured origins. production
// false or an empty list disables the check entirely.
func NewOriginGuard(origins []string, production bool) *OriginGuard {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			allowed[strings.ToLower(o)] = struct{}{}
		}
	}
	return &OriginGuard{
		allowed: allowed,
		active:  production && len(allowed) > 0,
	}
}

// Allow reports whether the request may proceed. Requests carrying neither
// header pass; a present header must match the allow-list.
func (g *OriginGuard) Allow(r *http.Request) bool {
	if !g.active {
		return true
	}

	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		return g.allowedOrigin(origin)
	}
	if referer := strings.TrimSpace(r.Header.Get("Referer")); referer != "" {
		u, err := url.Parse(referer)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		return g.allowedOrigin(u.Scheme + "://" + u.Host)
	}
	return true
}

func (g *OriginGuard) allowedOrigin(origin string) bool {
	origin = strings.ToLower(strings.TrimRight(origin, "/"))
	_, ok := g.allowed[origin]
	return ok
}
