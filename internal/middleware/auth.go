package middleware

import (
	"context"
	"net/http"
	"strings"

	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// TokenVerifier validates a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (util.Identity, error)
}

// UserChecker optionally confirms that a token's user still exists.
type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// AuthGate rejects requests without a valid bearer token and stores the
// token's identity on the context. With a nil checker the identity is trusted
// as-is until the token expires.
func AuthGate(tokens TokenVerifier, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing token")
			c.Abort()
			return
		}

		id, err := tokens.Verify(tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Invalid or expired token")
			c.Abort()
			return
		}

		if users != nil {
			ok, err := users.Exists(c.Request.Context(), id.UserID)
			if err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
				c.Abort()
				return
			}
			if !ok {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "User no longer exists")
				c.Abort()
				return
			}
		}

		c.Set(currentUserKey, id)
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser returns the identity set by AuthGate.
func CurrentUser(c *gin.Context) (util.Identity, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return util.Identity{}, false
	}
	id, ok := v.(util.Identity)
	return id, ok && id.UserID != ""
}
