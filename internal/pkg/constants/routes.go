package constants

// Route constants
const (
	HomeRoute     = "/"
	PostsRoute    = "/posts"
	WebhooksRoute = "/api/webhooks"
)

// ActiveNavClass is the CSS class applied to the header entry of the current page.
const ActiveNavClass = "active"
