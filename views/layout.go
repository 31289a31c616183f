package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ignews/ignews/internal/pkg/constants"
	"github.com/ignews/ignews/internal/pkg/viewmodel"
	"github.com/ignews/ignews/views/components"
)

// Header is the top bar with the primary navigation.
func Header() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="header"><div class="header-content"><img src="/images/logo.svg" alt="ig.news"><nav>`); err != nil {
			return err
		}
		links := []templ.Component{
			components.ActiveLink(constants.HomeRoute, constants.ActiveNavClass, components.NavLabel("Home")),
			components.ActiveLink(constants.PostsRoute, constants.ActiveNavClass, components.NavLabel("Posts")),
		}
		for _, link := range links {
			if err := link.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav></div></header>`)
		return err
	})
}

// Page wraps content in the document shell and header.
func Page(layout viewmodel.Layout, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(layout.DocumentTitle()) + `</title>` +
			`<link rel="stylesheet" href="/css/app.css"></head><body data-page="` + templ.EscapeString(layout.Page) + `">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := Header().Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
