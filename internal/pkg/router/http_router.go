package router

import (
	"github.com/ignews/ignews/app/controllers"
	"github.com/ignews/ignews/internal/pkg/constants"
	"github.com/ignews/ignews/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Use(middleware.NavigationMiddleware)

	app.Get(constants.HomeRoute, controllers.HandleHome)
	app.Get(constants.PostsRoute, controllers.HandlePosts)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
