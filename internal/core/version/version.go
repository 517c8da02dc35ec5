// Package version reports build metadata stamped in with -ldflags
package version

// BuildInfo is the build identity served by /meta/version
type BuildInfo struct {
	Service string `json:"service" example:"diwan-api"`
	Version string `json:"version" example:"v0.3.0"`
	Commit  string `json:"commit" example:"4f2a9c1"`
	Date    string `json:"date" example:"2025-10-01"`
}

// ServiceName is the canonical name used in logs, metrics, and client info
const ServiceName = "diwan-api"

// go build -ldflags "-X 'diwan/internal/core/version.version=v0.3.0' -X 'diwan/internal/core/version.commit=4f2a9c1'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the stamped build info
func Info() BuildInfo {
	return BuildInfo{Service: ServiceName, Version: version, Commit: commit, Date: date}
}

// Commit returns the stamped commit or "none"
func Commit() string { return commit }
