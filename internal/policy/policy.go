// Package policy holds the static route access table consulted by the
// authorization gate. The table is built once at startup and read-only
// afterwards, so it is safe under unbounded concurrent lookups.
package policy

import "strings"

type Access int

const (
	// Public routes bypass token checks entirely.
	Public Access = iota
	// Authenticated routes require a verified bearer token. Rules may
	// additionally restrict by role.
	Authenticated
)

// Rule maps a method + route pattern to an access requirement.
//
// Pattern is either an exact path ("/api/me") or a prefix wildcard
// ("/api/modules/*", matching the prefix and everything below it).
// An empty Method matches all methods.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
	Roles   []string
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "*"); ok {
		return strings.HasPrefix(path, prefix)
	}
	return r.Pattern == path
}

// specificity orders overlapping patterns: the longer literal prefix wins.
// Method-specific rules outrank method-agnostic ones at equal length.
func (r Rule) specificity() int {
	n := 2 * len(strings.TrimSuffix(r.Pattern, "*"))
	if r.Method != "" {
		n++
	}
	return n
}

// AllowsRole reports whether the rule permits the given role. A rule with no
// role list permits any authenticated caller.
func (r Rule) AllowsRole(role string) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Table is an ordered set of rules. Lookup is deterministic: the most
// specific matching pattern wins, and ties fall to declaration order.
type Table struct {
	rules []Rule
}

func NewTable(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// Match returns the winning rule for a request, or false if no rule matches.
// Callers treat "no match" as Authenticated: unknown routes are never open
// by accident.
func (t *Table) Match(method, path string) (Rule, bool) {
	best := -1
	var out Rule
	for _, r := range t.rules {
		if !r.matches(method, path) {
			continue
		}
		// Strictly greater keeps the first-declared rule on ties.
		if s := r.specificity(); s > best {
			best = s
			out = r
		}
	}
	return out, best >= 0
}

type Decision int

const (
	Allow Decision = iota
	// NeedAuth means the route requires a verified token the caller has not
	// presented (or presented one that failed verification).
	NeedAuth
	// DenyRole means the caller is authenticated but the route's role set
	// does not include theirs.
	DenyRole
)

// Decide is the pure authorization function: request metadata plus the table
// yields a decision. Transport adapters call it twice, before and after token
// verification.
func (t *Table) Decide(method, path string, authenticated bool, role string) Decision {
	rule, ok := t.Match(method, path)
	if ok && rule.Access == Public {
		return Allow
	}
	if !authenticated {
		return NeedAuth
	}
	if ok && !rule.AllowsRole(role) {
		return DenyRole
	}
	return Allow
}
