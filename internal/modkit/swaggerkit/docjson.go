package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/Vagvedi/gitrekt/internal/core/version"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

//go:embed openapi.json
var openapiDoc string

var docReader = func() string { return openapiDoc }

// Servers is the base url the UI calls, the versioned api root
const Servers = "/api/v1"

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope, error is a short label and message the detail, code is the stable machine code",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"message":     map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"retry_after": map[string]any{"type": "integer", "description": "seconds, set on 429"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status", "error"},
}

// serveDocJSON serves the embedded spec with the build version, servers,
// the error schema and default 400 and 500 responses filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		decorate(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func decorate(spec map[string]any) {
	// http-swagger's UI does not render 3.1
	spec["openapi"] = "3.0.3"
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": Servers}}
	}
	if info, ok := spec["info"].(map[string]any); ok && version.Version() != "dev" {
		info["version"] = version.Version()
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema
	}

	defaults := map[string]any{
		"400": errorResponse(http.StatusBadRequest, perr.ErrorCodeValidation, "Validation error", "username must be a valid GitHub username", "username"),
		"500": errorResponse(http.StatusInternalServerError, perr.ErrorCodePanic, "Internal server error", "internal error", ""),
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, r := range defaults {
				if _, ok := resps[code]; !ok {
					resps[code] = r
				}
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func errorResponse(status int, code perr.ErrorCode, label, msg, field string) map[string]any {
	ex := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        code,
		"error":       label,
		"message":     msg,
		"request_id":  "gitrekt/abc-000001",
	}
	if field != "" {
		ex["field"] = field
	}
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": ex,
			},
		},
	}
}
