// Package swaggerkit serves the OpenAPI document and the Swagger UI in front of it
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
)

// DocsBase is where the UI lives, the document sits at DocsBase/doc.json
const DocsBase = "/api/docs"

// Mount registers the UI and the decorated document, nothing when disabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(
		httpSwagger.InstanceName("gitrekt"),
		httpSwagger.URL(DocsBase+"/doc.json"),
		httpSwagger.DocExpansion("list"),
	)
	r.Get(DocsBase, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsBase+"/", http.StatusMovedPermanently)
	})
	r.Get(DocsBase+"/doc.json", serveDocJSON())
	r.Handle(DocsBase+"/*", ui)
}
