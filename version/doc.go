// Package version reports the utilkit build version.
//
// Version, Commit and Date are injected at build time:
//
//	-ldflags "-X github.com/dendrascience/utilkit/version.Version=v1.0.0 -X github.com/dendrascience/utilkit/version.Commit=abc123 -X github.com/dendrascience/utilkit/version.Date=2026-01-01T00:00:00Z"
//
// Without them the values fall back to debug.ReadBuildInfo, which covers
// `go install` builds, and then to development defaults.
package version
