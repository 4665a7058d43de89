package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminJwtMiddleware guards the admin surface (catalog refresh). Tokens
// are issued out of band; the only claim we care about is a valid
// signature with the shared secret.
func AdminJwtMiddleware(ctx *fiber.Ctx) error {
	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Admin API is disabled"))
	}

	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		ctx.Locals("admin_subject", claims["sub"])
	}
	return ctx.Next()
}
