package middleware

import (
	"strings"

	"github.com/amirasaad/digitalbank/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is where the verified *jwt.Token is stored in fiber locals.
const ContextKey = "user"

// JwtProtected protects routes with HS256 bearer tokens signed with cfg.Secret.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(cfg.Secret),
		},
		ContextKey:   ContextKey,
		ErrorHandler: jwtError,
	})
}

// Subject returns the sub claim of the verified token, or "" when absent.
func Subject(c *fiber.Ctx) string {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return ""
	}
	sub, _ := token.Claims.GetSubject()
	return sub
}

func jwtError(c *fiber.Ctx, err error) error {
	status, title := fiber.StatusUnauthorized, "Invalid or expired JWT"
	if strings.EqualFold(err.Error(), "missing or malformed JWT") {
		status, title = fiber.StatusBadRequest, "Missing or malformed JWT"
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"type":   "about:blank",
		"title":  title,
		"status": status,
		"detail": err.Error(),
	}, "application/problem+json")
}
