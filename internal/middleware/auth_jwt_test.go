package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	app := fiber.New()
	app.Use(JWTUidOnly())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func whoami(t *testing.T, app *fiber.App, authorization string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	if json.Unmarshal(raw, &body) != nil {
		body = nil
	}
	return resp.StatusCode, body
}

func TestJWTUidClaim(t *testing.T) {
	app := newAuthTestApp(t)
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	status, body := whoami(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-123", body["user_id"])
}

func TestJWTFallsBackToSubject(t *testing.T) {
	app := newAuthTestApp(t)
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-456",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	status, body := whoami(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-456", body["user_id"])
}

func TestJWTMissingHeaderIsAnonymous(t *testing.T) {
	app := newAuthTestApp(t)

	status, body := whoami(t, app, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, body["user_id"])
}

func TestJWTRejectsBadTokens(t *testing.T) {
	app := newAuthTestApp(t)

	expired := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	noIdentity := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	wrongAlg := signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{
		"uid": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "Bearer not.a.token"},
		{"expired", "Bearer " + expired},
		{"no uid or sub", "Bearer " + noIdentity},
		{"wrong algorithm", "Bearer " + wrongAlg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := whoami(t, app, tt.token)
			assert.Equal(t, fiber.StatusUnauthorized, status)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if uid := c.Get("X-User-Id"); uid != "" {
			c.Locals("user_id", uid)
		}
		return c.Next()
	})
	app.Post("/guarded", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodPost, "/guarded", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// the rejection speaks the same JSON error dialect as the handlers
	assert.Contains(t, resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "unauthorized", body["message"])

	req = httptest.NewRequest(fiber.MethodPost, "/guarded", nil)
	req.Header.Set("X-User-Id", "u1")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
