package middleware

import (
	"strings"

	"github.com/arzan03/EstateHub/internal/services"
	"github.com/gofiber/fiber/v2"
)

// TokenVerifier turns a bearer token into a session.
type TokenVerifier interface {
	ParseToken(token string) (services.Session, error)
}

// Route is a method and path pattern. Segments starting with ':' match any
// single non-empty segment.
type Route struct {
	Method string
	Path   string
}

func (r Route) matches(method, path string) bool {
	if r.Method != method {
		return false
	}
	want := splitPath(r.Path)
	got := splitPath(path)
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, ":") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// AuthMiddleware validates the bearer token on every request except the
// public routes. On a public route a valid token still attaches the session,
// and a bad or missing one is ignored.
func AuthMiddleware(verifier TokenVerifier, public ...Route) fiber.Handler {
	return func(c *fiber.Ctx) error {
		isPublic := false
		for _, r := range public {
			if r.matches(c.Method(), c.Path()) {
				isPublic = true
				break
			}
		}

		tokenString := c.Get(fiber.HeaderAuthorization)
		if tokenString == "" {
			if isPublic {
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}

		// Ensure it's a Bearer token
		tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
		session, err := verifier.ParseToken(tokenString)
		if err != nil {
			if isPublic {
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals("user_id", session.UserID)
		c.Locals("role", session.Role)
		return c.Next()
	}
}

// CurrentSession reads the session stored by AuthMiddleware. It is empty
// when the request is unauthenticated.
func CurrentSession(c *fiber.Ctx) services.Session {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	return services.Session{UserID: userID, Role: role}
}
