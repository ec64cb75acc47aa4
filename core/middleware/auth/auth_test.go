package auth_test

import (
	"net/http/httptest"
	"testing"

	"snipe-netbox-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		headers map[string]string
		want    int
	}{
		{"MissingKey", "secret", nil, fiber.StatusUnauthorized},
		{"WrongKey", "secret", map[string]string{auth.HeaderName: "nope"}, fiber.StatusUnauthorized},
		{"HeaderKey", "secret", map[string]string{auth.HeaderName: "secret"}, fiber.StatusOK},
		{"BearerKey", "secret", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
		{"Disabled", "", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(auth.New(auth.Config{ApiKey: tt.apiKey}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
