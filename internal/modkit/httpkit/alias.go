// Package httpkit is the http surface modules use instead of importing platform/net/http
package httpkit

import (
	"net/http"

	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
)

type (
	// Envelope is the JSON body every route writes
	Envelope = phttp.Envelope

	// Response lets a handler pick status and headers
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// Document writes data as the whole 200 body, outside the envelope
func Document(data any) Response { return phttp.Document(data) }

// Call adapts a return-style handler, out may be a Response to control status and headers
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Get mounts a return-style handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Post mounts a return-style handler under POST, roast routes take no body
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, Call(h)) }
