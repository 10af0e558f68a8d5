// Package version reports the restkit build version.
//
// Version and GitCommit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restkit/version.Version=1.2.0"
//
// The version is sent in the default User-Agent header and recorded as
// service.version on telemetry resources.
package version
