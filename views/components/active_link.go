package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ignews/ignews/internal/pkg/navigation"
)

// ActiveLink renders an anchor to href around a single child. The child gets
// activeClassName when the current route equals href exactly, "" otherwise.
// The current route is read from ctx on every render.
func ActiveLink(href, activeClassName string, child func(className string) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		className := ActiveClass(navigation.CurrentPath(ctx), href, activeClassName)

		if _, err := io.WriteString(w, `<a href="`+templ.EscapeString(string(templ.URL(href)))+`">`); err != nil {
			return err
		}
		if child != nil {
			if err := child(className).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</a>")
		return err
	})
}

// ActiveClass returns activeClassName if currentPath equals href, else "".
// No prefix or pattern matching.
func ActiveClass(currentPath, href, activeClassName string) string {
	if currentPath == href {
		return activeClassName
	}
	return ""
}

// NavLabel is an ActiveLink child rendering label in a span.
func NavLabel(label string) func(className string) templ.Component {
	return func(className string) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			open := "<span>"
			if className != "" {
				open = `<span class="` + templ.EscapeString(className) + `">`
			}
			_, err := io.WriteString(w, open+templ.EscapeString(label)+"</span>")
			return err
		})
	}
}
