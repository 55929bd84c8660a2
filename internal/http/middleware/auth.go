package middleware

import (
	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
	"docvault/internal/session"
)

const (
	// SessionCookieName is the HTTP-only cookie carrying the session identifier.
	SessionCookieName = "vault_session"
	// AccountIDLocalKey is the key under which the authenticated account's ID
	// is stored in Fiber's context locals.
	AccountIDLocalKey = "account_id"
)

// RequireSession resolves the session cookie against the registry and stores
// the bound account ID in context locals. Requests without a resolvable
// session are rejected with service.ErrAbsentSession before any handler runs;
// the app's error handler maps it to 401.
func RequireSession(sessions *session.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookieName)
		if id == "" {
			return service.ErrAbsentSession
		}
		accountID, ok := sessions.Resolve(id)
		if !ok {
			return service.ErrAbsentSession
		}
		c.Locals(AccountIDLocalKey, accountID)
		return c.Next()
	}
}

// AccountID returns the authenticated account's ID stored by RequireSession,
// or the empty string when the request is unauthenticated.
func AccountID(c *fiber.Ctx) string {
	if v, ok := c.Locals(AccountIDLocalKey).(string); ok {
		return v
	}
	return ""
}
