package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignews/ignews/internal/pkg/middleware"
)

func TestPagesHighlightActiveNavEntry(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NavigationMiddleware)
	app.Get("/", HandleHome)
	app.Get("/posts", HandlePosts)

	tests := []struct {
		path       string
		wantActive string
		wantPlain  string
	}{
		{path: "/", wantActive: `<a href="/"><span class="active">Home</span></a>`, wantPlain: `<a href="/posts"><span>Posts</span></a>`},
		{path: "/posts", wantActive: `<a href="/posts"><span class="active">Posts</span></a>`, wantPlain: `<a href="/"><span>Home</span></a>`},
	}

	for _, tc := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

		body := readBody(t, resp)
		assert.Contains(t, body, tc.wantActive)
		assert.Contains(t, body, tc.wantPlain)
	}
}
