// internal/tenant/host.go
//
// Host classification helpers.
//
// Context
// -------
// Every inbound request carries an untrusted Host header.  Before the router
// can decide whether the request belongs to a storefront it reduces that
// header to a canonical form and compares it against the platform base
// domain:
//
//   - NormalizeHost     – drop “:port”, lowercase.
//   - IsSubdomainOfBase – genuine suffix match on a dot boundary.
//   - ExtractSlug       – leftmost label of a tenant subdomain.
//
// Notes
// -----
//   - The slug is the FIRST label of whatever precedes the base domain, so
//     “api.shop.example.com” yields “api”, not “shop”.  Callers rely on this.
//   - All helpers are pure and safe for concurrent use.
package tenant

import "strings"

// NormalizeHost strips a trailing “:<digits>” suffix and lowercases the rest.
// An empty host stays empty.
func NormalizeHost(host string) string {
	// Repeat until stable so “a:1:2” and its normalized form agree.
	for {
		stripped := stripPort(host)
		if stripped == host {
			break
		}
		host = stripped
	}
	return strings.ToLower(host)
}

// IsSubdomainOfBase reports whether host sits strictly below base.  The base
// domain itself is never its own subdomain.
func IsSubdomainOfBase(host, base string) bool {
	h := NormalizeHost(host)
	b := NormalizeHost(base)
	if h == b {
		return false
	}
	return strings.HasSuffix(h, "."+b)
}

// ExtractSlug returns the tenant slug for host, or ok == false when host is
// not a subdomain of base.
func ExtractSlug(host, base string) (slug string, ok bool) {
	h := NormalizeHost(host)
	b := NormalizeHost(base)

	suffix := "." + b
	if !strings.HasSuffix(h, suffix) {
		return "", false
	}
	remainder := strings.TrimSuffix(h, suffix)
	if remainder == "" {
		// “.example.com” has nothing in front of the dot.
		return "", false
	}
	first, _, _ := strings.Cut(remainder, ".")
	if first == "" {
		return "", false
	}
	return first, true
}

// stripPort removes a trailing “:<digits>” suffix.  Anything else after a
// colon (IPv6 literals, garbage) is left alone.
func stripPort(h string) string {
	i := strings.LastIndexByte(h, ':')
	if i == -1 || i == len(h)-1 {
		return h
	}
	for _, r := range h[i+1:] {
		if r < '0' || r > '9' {
			return h
		}
	}
	return h[:i]
}
