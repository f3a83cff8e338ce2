// Package version reports the build of the running binary.
//
// Version and GitCommit are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/authgate/version.Version=1.2.0" ./cmd/authgate
//
// When GitCommit is not set, the VCS revision stamped by the Go toolchain is used.
package version
