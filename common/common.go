// Package common holds identity constants shared across binaries.
package common

// PackageName identifies this module in metrics and logs.
const PackageName = "github.com/tumichaels/oramd"

// Version is the build version, overridable at link time with
// -ldflags "-X github.com/tumichaels/oramd/common.Version=...".
var Version = "dev"
