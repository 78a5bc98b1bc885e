// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "schoolku_backend/internals/helpers"
)

// leeway applied to exp/nbf
const clockSkew = 30 * time.Second

// AuthenticateToken verifies an HS256 bearer token and stores the caller as
// helper.Principal in Locals. Every failure is a 401 {error}.
func AuthenticateToken(secret string) fiber.Handler {
	if secret == "" {
		log.Println("[WARN] JWT_SECRET kosong, semua request terautentikasi akan ditolak")
	}
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Missing JWT secret"})
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims := &helper.Claims{}
		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		_, err = parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil && !onlySkewed(err, claims) {
			var vErr *jwt.ValidationError
			if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
				return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		if claims.UserID <= 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals(helper.LocRawToken, tokenString)
		c.Locals(helper.LocPrincipal, helper.Principal{UserID: claims.UserID, Username: claims.Username})
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(fields) == 0 {
		return "", errors.New("Access token required")
	}
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Invalid token format")
	}
	tok := strings.Trim(fields[1], "\"'")
	if tok == "" {
		return "", errors.New("Access token required")
	}
	return tok, nil
}

// onlySkewed reports whether err is just an exp/nbf failure within clockSkew
// on an otherwise valid token.
func onlySkewed(err error, claims *helper.Claims) bool {
	var vErr *jwt.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	if vErr.Errors&^(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
		return false
	}
	now := time.Now()
	if claims.ExpiresAt != nil && now.Sub(claims.ExpiresAt.Time) > clockSkew {
		return false
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.Sub(now) > clockSkew {
		return false
	}
	return true
}
