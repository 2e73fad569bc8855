package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/devconnector/api/internal/domain"
)

const (
	// TokenHeader carries the access token on protected routes.
	TokenHeader = "x-auth-token"

	// userKey is the locals field the resolved identity is stored under.
	userKey = "user"

	MessageNoToken      = "No token, authorization denied"
	MessageInvalidToken = "Token is not valid"
)

// TokenVerifier resolves a raw token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (domain.IdentityClaim, error)
}

// AuthMiddleware rejects requests without a valid token and exposes the
// caller's identity to the handlers behind it.
type AuthMiddleware struct {
	tokens TokenVerifier
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Get(TokenHeader)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": MessageNoToken})
	}

	claim, err := m.tokens.Verify(token)
	if err != nil {
		m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": MessageInvalidToken})
	}

	c.Locals(userKey, claim)
	return c.Next()
}

// UserFromContext retrieves the authenticated identity.
func UserFromContext(c *fiber.Ctx) (domain.IdentityClaim, bool) {
	claim, ok := c.Locals(userKey).(domain.IdentityClaim)
	return claim, ok
}
