package serverutils

import (
	"net/http/httptest"
	"testing"

	"note-to-self/internal/pkg/access"
	"note-to-self/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	grants map[string]*access.Grant
}

func (r stubResolver) Resolve(token string) (*access.Grant, error) {
	if g, ok := r.grants[token]; ok {
		return g, nil
	}
	return nil, ErrForbidden
}

func newAccessApp() *fiber.App {
	resolver := stubResolver{grants: map[string]*access.Grant{
		"good": {SessionId: "s1", NotebookId: 7},
	}}

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Use(NotebookAccessMiddleware(resolver))
	app.Get("/", func(c *fiber.Ctx) error {
		grant, err := GrantFromCtx(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"notebook_id": grant.NotebookId})
	})
	return app
}

func TestNotebookAccessMiddleware(t *testing.T) {
	app := newAccessApp()

	t.Run("no token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("query parameter", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/?token=good", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Cookie", TokenCookieName+"=good")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
