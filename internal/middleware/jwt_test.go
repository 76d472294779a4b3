package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/protected", func(c *fiber.Ctx) error {
		id, _ := c.Locals("user_id").(uint)
		role, _ := c.Locals("user_role").(string)
		return c.JSON(fiber.Map{"id": id, "role": role})
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTProtectedAcceptsValidToken(t *testing.T) {
	app := protectedApp()

	signed := signToken(t, testSecret, jwt.MapClaims{
		"sub":  7,
		"role": "Instructor",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTProtectedRejectsMissingHeader(t *testing.T) {
	app := protectedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsWrongSecret(t *testing.T) {
	app := protectedApp()

	signed := signToken(t, "other-secret", jwt.MapClaims{"sub": 7})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExtractUserIDFromClaimsVariants(t *testing.T) {
	id := extractUserIDFromClaims(jwt.MapClaims{"sub": float64(12)})
	require.NotNil(t, id)
	require.EqualValues(t, 12, *id)

	id = extractUserIDFromClaims(jwt.MapClaims{"user_id": "34"})
	require.NotNil(t, id)
	require.EqualValues(t, 34, *id)

	require.Nil(t, extractUserIDFromClaims(jwt.MapClaims{"sub": "not-a-number"}))
}
