package router

import (
	"strings"
	"time"

	"github.com/ignews/ignews/app/controllers"
	"github.com/ignews/ignews/internal/pkg/billing"
	"github.com/ignews/ignews/internal/pkg/cache"
	"github.com/ignews/ignews/internal/pkg/constants"
	"github.com/ignews/ignews/internal/pkg/database"
	"github.com/ignews/ignews/internal/pkg/env"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"
)

type ApiRouter struct {
	stripe billing.StripeConfig
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	host, port, password := cache.Endpoint()
	storage := redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1, // cache uses DB 0
		Reset:    false,
	})

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        env.GetEnvInt("API_RATE_LIMIT", 120),
		Expiration: time.Minute,
		Storage:    storage,
		Next: func(c *fiber.Ctx) bool {
			// webhook deliveries are not rate limited
			return c.Path() == constants.WebhooksRoute
		},
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Stripe webhooks (no CSRF, signature-verified in controller)
	svc := billing.NewServiceFromDB(database.GetDB(), h.stripe)
	webhooks := controllers.NewStripeWebhookController(h.stripe, svc, svc)
	api.All(strings.TrimPrefix(constants.WebhooksRoute, "/api"), webhooks.HandleWebhook)
}

func NewApiRouter(stripe billing.StripeConfig) *ApiRouter {
	return &ApiRouter{stripe: stripe}
}
