package fiberlog

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newLoggedApp(t *testing.T) (*fiber.App, *test.Hook) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagMethod, TagStatus, TagUserID, RequestID}}))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).SendString("fail")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app, hook
}

func TestLogger(t *testing.T) {
	t.Run(`request id from header`, func(t *testing.T) {
		app, hook := newLoggedApp(t)
		req := httptest.NewRequest(fiber.MethodGet, "/ok", nil)
		req.Header.Set(HeaderRequestID, "req-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, "req-1", resp.Header.Get(HeaderRequestID))

		entry := hook.LastEntry()
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, "req-1", entry.Data[RequestID])
		require.Equal(t, fiber.MethodGet, entry.Data[TagMethod])
		require.NotContains(t, entry.Data, TagUserID)
	})

	t.Run(`generated request id`, func(t *testing.T) {
		app, _ := newLoggedApp(t)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
		require.NoError(t, err)
		require.Len(t, resp.Header.Get(HeaderRequestID), 36)
	})

	t.Run(`level by status`, func(t *testing.T) {
		app, hook := newLoggedApp(t)
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
		require.NoError(t, err)
		require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

		_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
		require.NoError(t, err)
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run(`options are skipped`, func(t *testing.T) {
		app, hook := newLoggedApp(t)
		_, err := app.Test(httptest.NewRequest(fiber.MethodOptions, "/ok", nil))
		require.NoError(t, err)
		require.Empty(t, hook.AllEntries())
	})
}
