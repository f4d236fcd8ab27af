package auth

import "strings"

// Policy decides whether an authenticated email may mutate projects.
type Policy interface {
	IsAdmin(email string) bool
}

// PolicyFunc adapts a predicate to Policy.
type PolicyFunc func(email string) bool

func (f PolicyFunc) IsAdmin(email string) bool { return f(email) }

// AdminPolicy authorizes exactly one configured email. Comparison ignores
// case and surrounding whitespace; an empty configured email denies everyone.
type AdminPolicy struct {
	email string
}

func NewAdminPolicy(adminEmail string) *AdminPolicy {
	return &AdminPolicy{email: normalizeEmail(adminEmail)}
}

func (p *AdminPolicy) IsAdmin(email string) bool {
	if p == nil || p.email == "" {
		return false
	}
	return normalizeEmail(email) == p.email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
