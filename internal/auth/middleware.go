package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// RequireAdmin guards mutating routes: without an authenticated admin session
// the request short-circuits and the wrapped handler never runs.
func RequireAdmin(sessions *SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !sessions.IsAdmin(c) {
			return apperrors.NewForbidden("Unauthorized - Admin access required")
		}
		return c.Next()
	}
}
