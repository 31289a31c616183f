package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ignews/ignews/internal/pkg/billing"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App, stripe billing.StripeConfig) {
	// HttpRouter first, it installs the navigation middleware
	setup(app, NewHttpRouter(), NewApiRouter(stripe))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
