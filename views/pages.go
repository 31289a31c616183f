package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HomeContent is the landing page hero.
func HomeContent() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="hero"><span>Hey, welcome</span>`+
			`<h1>News about the <span>React</span> world.</h1>`+
			`<p>Get access to all the publications</p></section>`)
		return err
	})
}

// PostsContent lists the publications.
func PostsContent() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="posts"><h1>Posts</h1><p>No publications yet.</p></section>`)
		return err
	})
}
