// Package buildinfo exposes values stamped into the binary at link time.
//
// Set them with -ldflags, for example:
//
//	go build -ldflags "-X github.com/coursecomment/coursecomment/internal/buildinfo.Environment=production \
//	  -X github.com/coursecomment/coursecomment/internal/buildinfo.Version=v1.2.0" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

var (
	Version     = "N/A"
	BuildDate   = "N/A"
	BuildCommit = "N/A"

	// Environment selects the default API base URL. Anything other than
	// "production" is treated as development.
	Environment = EnvDevelopment
)

// IsProduction reports whether the binary was built for production.
func IsProduction() bool {
	return Environment == EnvProduction
}

// PrintBuildData writes version, date, commit and environment to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", BuildCommit)
	fmt.Fprintf(w, "Build environment: %s\n", Environment)
}
