package identity

import (
	"errors"
	"net/http"
	"strings"

	"foodie-api/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserLocalKey is the fiber locals key the resolved user is stored under.
const UserLocalKey = "current_user"

// errorResponse is the error payload the middleware writes.
type errorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// RequireUser returns middleware that resolves the Authorization bearer
// token into a User and stores it in the request locals. Requests without
// a valid session are rejected with 401.
func RequireUser(provider Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rayID, ok := c.Locals("requestid").(string)
		if !ok {
			rayID = "unknown"
		}

		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(errorResponse{
				Message: "Authentication required",
				RayID:   rayID,
			})
		}

		user, err := provider.CurrentUser(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				return c.Status(http.StatusUnauthorized).JSON(errorResponse{
					Message: "Authentication required",
					RayID:   rayID,
				})
			}

			logger.Get().Error("Failed to resolve user",
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
			return c.Status(http.StatusServiceUnavailable).JSON(errorResponse{
				Message: "Identity provider unavailable",
				RayID:   rayID,
			})
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// UserFromCtx returns the authenticated user stored by RequireUser.
func UserFromCtx(c *fiber.Ctx) (*User, bool) {
	user, ok := c.Locals(UserLocalKey).(*User)
	return user, ok
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
