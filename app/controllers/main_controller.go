package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ignews/ignews/internal/pkg/env"
	"github.com/ignews/ignews/internal/pkg/viewmodel"
	"github.com/ignews/ignews/views"
)

func HandleHome(c *fiber.Ctx) error {
	layout := viewmodel.Layout{Page: "home", IsDev: env.IsDev()}
	return render(c, views.Page(layout, views.HomeContent()))
}

func HandlePosts(c *fiber.Ctx) error {
	layout := viewmodel.Layout{Page: "posts", Title: "Posts", IsDev: env.IsDev()}
	return render(c, views.Page(layout, views.PostsContent()))
}
