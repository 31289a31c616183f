// Package navigation exposes the current request path to view components.
package navigation

import "context"

type currentPathKey struct{}

// WithCurrentPath returns a copy of ctx carrying the current route path.
func WithCurrentPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, currentPathKey{}, path)
}

// CurrentPath returns the path stored by WithCurrentPath, or "" when none is set.
func CurrentPath(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if path, ok := ctx.Value(currentPathKey{}).(string); ok {
		return path
	}
	return ""
}
