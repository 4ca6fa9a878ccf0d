// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/kailas-cloud/eacsearch/internal/version.Version=v1.4.0"
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build for logs and GET /health.
func String() string {
	return Version + " (" + Commit + ", built " + Date + ")"
}
