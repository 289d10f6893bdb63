package router

import (
	"net/http"
	"testing"

	"github.com/yanizio/shopfront/internal/auth"
	"github.com/yanizio/shopfront/internal/tenant"
)

const base = "example.com"

func sess(role string) *auth.Session { return &auth.Session{UserID: "u1", Role: role} }

func TestDecide_Rewrites(t *testing.T) {
	cases := []struct {
		name    string
		host    string
		path    string
		outcome Outcome
		rewrite string
		kind    tenant.Kind
	}{
		{"subdomain root", "shop.example.com", "/", OutcomeRewrite, "/storefront", tenant.KindSubdomain},
		{"subdomain path", "SHOP.EXAMPLE.COM:8080", "/products/42", OutcomeRewrite, "/storefront/products/42", tenant.KindSubdomain},
		{"custom domain", "mystore.com", "/cart", OutcomeRewrite, "/storefront/cart", tenant.KindCustom},
		{"base domain", "example.com", "/pricing", OutcomePass, "", tenant.KindBase},
		{"localhost", "localhost:3000", "/", OutcomePass, "", tenant.KindBase},
		{"empty host", "", "/", OutcomeRewrite, "/storefront", tenant.KindCustom},
		{"lookalike", "notexample.com", "/", OutcomeRewrite, "/storefront", tenant.KindCustom},
		{"api on tenant", "shop.example.com", "/api/products", OutcomePass, "", tenant.KindBase},
		{"signin on tenant", "shop.example.com", "/signin", OutcomePass, "", tenant.KindBase},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := Decide(Input{Host: c.host, Path: c.path, BaseDomain: base})
			if d.Outcome != c.outcome {
				t.Fatalf("outcome = %v, want %v", d.Outcome, c.outcome)
			}
			if d.RewritePath != c.rewrite {
				t.Fatalf("rewrite = %q, want %q", d.RewritePath, c.rewrite)
			}
			if d.Host.Kind != c.kind {
				t.Fatalf("kind = %v, want %v", d.Host.Kind, c.kind)
			}
		})
	}
}

func TestDecide_SuperAdminGate(t *testing.T) {
	cases := []struct {
		name    string
		session *auth.Session
		outcome Outcome
		status  int
		msg     string
	}{
		{"store owner", sess(auth.RoleStoreOwner), OutcomeForbidden, http.StatusForbidden, "Forbidden"},
		{"staff", sess(auth.RoleStaff), OutcomeForbidden, http.StatusForbidden, "Forbidden"},
		{"customer", sess(auth.RoleCustomer), OutcomeForbidden, http.StatusForbidden, "Forbidden"},
		{"signed out", nil, OutcomeUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"super admin", sess(auth.RoleSuperAdmin), OutcomePass, 0, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := Decide(Input{
				Host:       "example.com",
				Path:       "/api/super-admin/stores",
				RawQuery:   "preview=1",
				BaseDomain: base,
				Session:    c.session,
			})
			if d.Outcome != c.outcome || d.Status != c.status || d.Error != c.msg {
				t.Fatalf("got %v/%d/%q, want %v/%d/%q",
					d.Outcome, d.Status, d.Error, c.outcome, c.status, c.msg)
			}
			if c.outcome != OutcomePass && len(d.Cookies) != 0 {
				t.Fatalf("denial carried cookies: %v", d.Cookies)
			}
		})
	}
}

func TestDecide_AdminGate(t *testing.T) {
	for role, allowed := range map[string]bool{
		auth.RoleSuperAdmin: true,
		auth.RoleStoreOwner: true,
		auth.RoleStaff:      true,
		auth.RoleCustomer:   false,
	} {
		d := Decide(Input{Host: "example.com", Path: "/admin/products", BaseDomain: base, Session: sess(role)})
		if got := d.Outcome == OutcomePass; got != allowed {
			t.Errorf("role %s: outcome %v, allowed want %v", role, d.Outcome, allowed)
		}
	}

	d := Decide(Input{
		Host:       "example.com",
		Path:       "/admin/orders",
		RequestURI: "/admin/orders?page=2",
		BaseDomain: base,
	})
	if d.Outcome != OutcomeSignIn || d.Status != http.StatusTemporaryRedirect {
		t.Fatalf("signed out admin: %v/%d", d.Outcome, d.Status)
	}
	if want := "/signin?callbackUrl=%2Fadmin%2Forders%3Fpage%3D2"; d.Location != want {
		t.Fatalf("location = %q, want %q", d.Location, want)
	}
}

func TestDecide_OtherPathsNeedNoSession(t *testing.T) {
	for _, p := range []string{"/", "/api/products", "/signin", "/about"} {
		d := Decide(Input{Host: "example.com", Path: p, BaseDomain: base})
		if d.Outcome != OutcomePass {
			t.Errorf("%s: outcome = %v, want pass", p, d.Outcome)
		}
	}
}

func TestDecide_PreviewSurvivesRewrite(t *testing.T) {
	d := Decide(Input{Host: "shop.example.com", Path: "/", RawQuery: "preview=TRUE", BaseDomain: base})
	if d.Outcome != OutcomeRewrite {
		t.Fatalf("outcome = %v, want rewrite", d.Outcome)
	}
	if len(d.Cookies) != 1 || d.Cookies[0].Value != "1" {
		t.Fatalf("cookies = %+v, want preview set", d.Cookies)
	}
}

func TestDecide_PreviewOnPassThrough(t *testing.T) {
	d := Decide(Input{Host: "example.com", Path: "/", RawQuery: "preview=off", BaseDomain: base})
	if d.Outcome != OutcomePass || len(d.Cookies) != 1 || d.Cookies[0].MaxAge >= 0 {
		t.Fatalf("got %v %+v, want pass with cleared cookie", d.Outcome, d.Cookies)
	}
}

func TestStorefrontPath(t *testing.T) {
	cases := map[string]string{
		"/":          "/storefront",
		"":           "/storefront",
		"/p/1":       "/storefront/p/1",
		"/products/": "/storefront/products/",
	}
	for in, want := range cases {
		if got := StorefrontPath(in); got != want {
			t.Errorf("StorefrontPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsPlatformPath(t *testing.T) {
	cases := map[string]bool{
		"/admin":            true,
		"/admin/stores":     true,
		"/api/healthz":      true,
		"/signin":           true,
		"/api":              false,
		"/":                 false,
		"/products/admin":   false,
		"/storefront/thing": false,
	}
	for in, want := range cases {
		if got := IsPlatformPath(in); got != want {
			t.Errorf("IsPlatformPath(%q) = %v, want %v", in, got, want)
		}
	}
}
