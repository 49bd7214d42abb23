// Package tenant binds every request to exactly one organization, derived
// from the request hostname.
package tenant

import (
	"net"
	"net/http"
	"strings"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("TENANT")

var CodeUnresolvable = ErrRegistry.Register("UNRESOLVABLE", errx.TypeValidation, http.StatusBadRequest, "Request host does not identify a tenant")

// ErrUnresolvable names the hostname pattern that would have worked.
func ErrUnresolvable(host, rootDomain string) *errx.Error {
	return ErrRegistry.New(CodeUnresolvable).
		WithDetail("host", host).
		WithDetail("expected", "<tenant>."+rootDomain)
}

// Resolve maps "<slug>.<rootDomain>" (with or without a port) to slug. The
// root domain itself, foreign hosts and multi-label prefixes are rejected;
// there is no default tenant.
//
// The slug is always a single DNS label: "a.b.<rootDomain>" is unresolvable,
// it never yields the slug "a.b".
func Resolve(hostname, rootDomain string) (kernel.TenantSlug, error) {
	host := strings.ToLower(strings.TrimSpace(hostname))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	root := strings.ToLower(strings.Trim(rootDomain, "."))

	if root == "" || host == root {
		return "", ErrUnresolvable(hostname, root)
	}

	slug, ok := strings.CutSuffix(host, "."+root)
	if !ok || !isLabel(slug) {
		return "", ErrUnresolvable(hostname, root)
	}
	return kernel.NewTenantSlug(slug), nil
}

// isLabel accepts a single DNS label: [a-z0-9-], no leading or trailing
// hyphen, at most 63 characters.
func isLabel(s string) bool {
	if s == "" || len(s) > 63 || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < 'a' || ch > 'z') && (ch < '0' || ch > '9') && ch != '-' {
			return false
		}
	}
	return true
}
