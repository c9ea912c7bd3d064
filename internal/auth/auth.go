// Package auth maps identity-provider group memberships onto grading company
// scopes for the admin surface. The server sits behind an authenticating
// proxy, so group names arrive in a trusted request header.
package auth

import (
	"sort"
	"strings"
)

// GroupsHeader is the request header the authenticating proxy sets with the
// caller's comma-separated group names.
const GroupsHeader = "X-Auth-Groups"

// EmailHeader carries the caller's email, set by the same proxy. Used for
// audit trails only, never for authorization.
const EmailHeader = "X-Auth-Email"

// superAdminGroup grants access to every grading company.
const superAdminGroup = "Super-Admins"

// groupCompanies maps admin group names onto the company whose data the group
// may manage.
var groupCompanies = map[string]string{
	"PSA-Admins": "psa",
	"BGS-Admins": "bgs",
	"SGC-Admins": "sgc",
	"CGC-Admins": "cgc",
}

// Context is the resolved authorization of one request.
type Context struct {
	unrestricted bool
	companies    map[string]bool
}

// FromGroups resolves group names to an authorization context. Unrecognized
// groups are ignored.
func FromGroups(groups []string) Context {
	ctx := Context{companies: map[string]bool{}}
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == superAdminGroup {
			ctx.unrestricted = true
			continue
		}
		if company, ok := groupCompanies[g]; ok {
			ctx.companies[company] = true
		}
	}
	return ctx
}

// ParseGroupsHeader splits the trusted groups header into group names.
func ParseGroupsHeader(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			groups = append(groups, p)
		}
	}
	return groups
}

// IsAdmin reports whether the caller may use the admin surface at all.
func (c Context) IsAdmin() bool {
	return c.unrestricted || len(c.companies) > 0
}

// Unrestricted reports whether the caller may act on every company.
func (c Context) Unrestricted() bool {
	return c.unrestricted
}

// Allows reports whether the caller may act on the given company's data.
func (c Context) Allows(company string) bool {
	if c.unrestricted {
		return true
	}
	return c.companies[strings.ToLower(company)]
}

// Companies returns the caller's company scopes in sorted order. Unrestricted
// callers get nil, which means "no filter" to the stores; callers must gate on
// IsAdmin before treating nil as full access.
func (c Context) Companies() []string {
	if c.unrestricted || len(c.companies) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.companies))
	for company := range c.companies {
		out = append(out, company)
	}
	sort.Strings(out)
	return out
}
