package middleware

import (
	"net/http"
	"strings"

	jsonres "myStoreCloud/pkg/response"

	"github.com/labstack/echo/v4"
)

// HeaderStore lets clients without a subdomain (mobile apps, tests)
// name the store explicitly.
const HeaderStore = "X-Store"

// TenantMiddleware extracts the store identifier of the request and
// stores it in the echo context under "tenant_id". The X-Store header
// wins; otherwise the first label of the Host is used, so
// alice.mystorecloud.io resolves to "alice".
func TenantMiddleware(baseDomain string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tenantID := c.Request().Header.Get(HeaderStore)

			if tenantID == "" {
				tenantID = subdomainOf(c.Request().Host, baseDomain)
			}

			if tenantID == "" {
				return c.JSON(http.StatusBadRequest, jsonres.Error(
					"BAD_REQUEST", "Unable to determine store for this request", nil,
				))
			}

			c.Set("tenant_id", strings.ToLower(tenantID))

			return next(c)
		}
	}
}

func subdomainOf(host, baseDomain string) string {
	// strip port
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	if baseDomain != "" {
		suffix := "." + baseDomain
		if !strings.HasSuffix(host, suffix) {
			return ""
		}
		sub := strings.TrimSuffix(host, suffix)
		if strings.Contains(sub, ".") {
			return ""
		}
		return sub
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}

	return parts[0]
}

// TenantID reads the tenant set by TenantMiddleware.
func TenantID(c echo.Context) string {
	tenantID, _ := c.Get("tenant_id").(string)
	return tenantID
}
