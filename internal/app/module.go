package app

import "github.com/simp-lee/cmsbase/internal/middleware"

// Module defines the contract for a self-registering business module.
// Each module declares its API routes, including who may call them;
// the route table is the single source of access control.
type Module interface {
	Routes() []middleware.Route
}
