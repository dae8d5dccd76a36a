// Package net holds request context helpers shared by the transport packages
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID returns the id chi's RequestID middleware stored, empty outside a request
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
