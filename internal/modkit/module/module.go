// Package module holds the module contract, typed port lookup and the port registry
package module

import (
	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
)

// Module mounts routes and exposes a port bundle for cross module wiring
// it lives apart from modkit so a module exporting its own ports type avoids an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
