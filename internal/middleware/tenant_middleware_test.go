//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runTenantMiddleware(t *testing.T, host, header, baseDomain string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = host
	if header != "" {
		req.Header.Set(HeaderStore, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured string
	handler := TenantMiddleware(baseDomain)(func(c echo.Context) error {
		captured = TenantID(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatal(err)
	}

	return captured, rec
}

func TestTenantMiddleware_HeaderWins(t *testing.T) {
	tenant, _ := runTenantMiddleware(t, "bob.mystorecloud.io", "Alice", "mystorecloud.io")
	if tenant != "alice" {
		t.Errorf("expected header store lowercased, got %q", tenant)
	}
}

func TestTenantMiddleware_SubdomainOfBaseDomain(t *testing.T) {
	tenant, _ := runTenantMiddleware(t, "alice.mystorecloud.io:8080", "", "mystorecloud.io")
	if tenant != "alice" {
		t.Errorf("expected subdomain alice, got %q", tenant)
	}
}

func TestTenantMiddleware_RejectsNestedSubdomain(t *testing.T) {
	_, rec := runTenantMiddleware(t, "a.b.mystorecloud.io", "", "mystorecloud.io")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for nested subdomain, got %d", rec.Code)
	}
}

func TestTenantMiddleware_RejectsWrongBaseDomain(t *testing.T) {
	_, rec := runTenantMiddleware(t, "alice.elsewhere.com", "", "mystorecloud.io")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for foreign host, got %d", rec.Code)
	}
}

func TestTenantMiddleware_NoBaseDomainUsesFirstLabel(t *testing.T) {
	tenant, _ := runTenantMiddleware(t, "alice.shops.example.com", "", "")
	if tenant != "alice" {
		t.Errorf("expected first host label, got %q", tenant)
	}
}

func TestTenantMiddleware_BareHostIsRejected(t *testing.T) {
	_, rec := runTenantMiddleware(t, "localhost:8080", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when no store can be determined, got %d", rec.Code)
	}
}
