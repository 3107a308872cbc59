// Package module holds the module contract and port lookup helpers.
// It sits below modkit so a module can export its own ports type without an import cycle
package module

import (
	phttp "chatlens/internal/platform/net/http"
)

// Module mounts routes and publishes the collaborators other parts of the
// process may borrow
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
