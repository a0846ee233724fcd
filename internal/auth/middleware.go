package auth

import (
	"net/http"
	"strings"
	"time"

	"pathific-platform/internal/policy"
	"pathific-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// Gate is the per-request authorization boundary. It consults the policy
// table before any handler runs: public routes pass through untouched,
// everything else requires a verified bearer token, and role-restricted
// routes additionally check the token's role.
//
// All token rejections (missing, malformed, bad signature, expired) produce
// the same response body; the specific reason is only logged. An
// insufficient role is a distinct 403: the caller is known but not permitted.
func Gate(table *policy.Table, m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.Request.URL.Path

		if table.Decide(method, path, false, "") == policy.Allow {
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			rejectToken(c, ErrNoToken)
			return
		}

		claims, err := m.Verify(strings.TrimPrefix(raw, bearerPrefix), time.Now())
		if err != nil {
			rejectToken(c, err)
			return
		}

		if table.Decide(method, path, true, claims.Role) == policy.DenyRole {
			logger.FromGin(c).Warn("request forbidden",
				"path", path, "subject", claims.Subject, "role", claims.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			return
		}

		ctx := WithIdentity(c.Request.Context(), claims.Subject, claims.Name, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for handler convenience.
		c.Set("email", claims.Subject)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// rejectToken aborts with the uniform authentication failure. The body must
// not vary by cause; an expired token and a missing one look identical to
// the caller.
func rejectToken(c *gin.Context, reason error) {
	logger.FromGin(c).Warn("token rejected",
		"path", c.Request.URL.Path, "reason", reason.Error())
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "authentication required"})
}
