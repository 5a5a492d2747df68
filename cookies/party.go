package cookies

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Key identifies a cookie within a page load.
type Key struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// String returns the name, domain and path joined the way cookie tables key their rows.
func (k Key) String() string {
	return k.Name + k.Domain + k.Path
}

// IsFirstParty reports whether a cookie domain belongs to the same site as the page it was
// observed on. Sites are compared by eTLD+1; hosts without a registrable domain (IP
// addresses, localhost) must match exactly.
func IsFirstParty(cookieDomain, pageURL string) bool {
	pageHost := hostOf(pageURL)
	cookieHost := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(cookieDomain), "."))
	if pageHost == "" || cookieHost == "" {
		return false
	}

	if net.ParseIP(pageHost) != nil || net.ParseIP(cookieHost) != nil {
		return pageHost == cookieHost
	}

	pageSite, err := publicsuffix.EffectiveTLDPlusOne(pageHost)
	if err != nil {
		return pageHost == cookieHost
	}
	cookieSite, err := publicsuffix.EffectiveTLDPlusOne(cookieHost)
	if err != nil {
		return false
	}
	return pageSite == cookieSite
}

func hostOf(pageURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
