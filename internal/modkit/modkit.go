// Package modkit is how API modules are declared, configured, and mounted
package modkit

import (
	"diwan/internal/modkit/repokit"
	"diwan/internal/platform/logger"
	phttp "diwan/internal/platform/net/http"
	"diwan/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Module is one feature area mounted under its own prefix
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports is the module's service surface for other modules and tests; may be nil
	Ports() any
	Name() string
}

// Deps are the shared process resources; every backend may be nil
type Deps struct {
	Log logger.Logger
	PG  repokit.TxRunner
	CH  store.Clickhouse
	RDS *redis.Client
}
