package policy

import "testing"

func testTable() *Table {
	return NewTable(
		Rule{Method: "GET", Pattern: "/healthz", Access: Public},
		Rule{Method: "GET", Pattern: "/api/courts", Access: Public},
		Rule{Method: "POST", Pattern: "/api/courts", Access: Authenticated, Roles: []string{"admin"}},
		Rule{Method: "GET", Pattern: "/api/courts/*", Access: Public},
		Rule{Pattern: "/api/auth/*", Access: Public},
		Rule{Pattern: "/api/modules/*", Access: Authenticated, Roles: []string{"curator", "admin"}},
		Rule{Method: "GET", Pattern: "/api/modules/*", Access: Authenticated},
		Rule{Pattern: "/api/*", Access: Authenticated},
	)
}

func TestMatchPrefersLongestPattern(t *testing.T) {
	tbl := testTable()

	r, ok := tbl.Match("GET", "/api/courts/winner")
	if !ok || r.Pattern != "/api/courts/*" {
		t.Fatalf("expected /api/courts/* to win over /api/*, got %+v", r)
	}

	r, ok = tbl.Match("POST", "/api/auth/login")
	if !ok || r.Access != Public {
		t.Fatalf("expected auth prefix rule, got %+v", r)
	}
}

func TestMatchMethodSpecificOutranksMethodAgnostic(t *testing.T) {
	tbl := testTable()

	r, ok := tbl.Match("GET", "/api/modules/42")
	if !ok || r.Method != "GET" {
		t.Fatalf("expected GET-specific module rule, got %+v", r)
	}
	if len(r.Roles) != 0 {
		t.Fatalf("GET module rule must not carry roles, got %+v", r)
	}

	r, _ = tbl.Match("DELETE", "/api/modules/42")
	if len(r.Roles) == 0 {
		t.Fatalf("expected role-restricted rule for DELETE")
	}
}

func TestMatchTieBreaksByDeclarationOrder(t *testing.T) {
	tbl := NewTable(
		Rule{Method: "GET", Pattern: "/api/things", Access: Public},
		Rule{Method: "GET", Pattern: "/api/things", Access: Authenticated},
	)
	r, ok := tbl.Match("GET", "/api/things")
	if !ok || r.Access != Public {
		t.Fatalf("expected first-declared rule to win, got %+v", r)
	}
}

func TestDecide(t *testing.T) {
	tbl := testTable()

	if d := tbl.Decide("GET", "/api/courts", false, ""); d != Allow {
		t.Fatalf("public route must allow anonymous, got %v", d)
	}
	if d := tbl.Decide("GET", "/api/me", false, ""); d != NeedAuth {
		t.Fatalf("protected route must need auth, got %v", d)
	}
	if d := tbl.Decide("POST", "/api/courts", true, "user"); d != DenyRole {
		t.Fatalf("admin route must deny user role, got %v", d)
	}
	if d := tbl.Decide("POST", "/api/courts", true, "admin"); d != Allow {
		t.Fatalf("admin route must allow admin, got %v", d)
	}
	// Unknown routes default to authenticated.
	if d := tbl.Decide("GET", "/unknown", false, ""); d != NeedAuth {
		t.Fatalf("unmatched route must need auth, got %v", d)
	}
	if d := tbl.Decide("GET", "/unknown", true, "user"); d != Allow {
		t.Fatalf("unmatched route allows any authenticated caller, got %v", d)
	}
}
