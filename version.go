package stencil

import "fmt"

const (
	// MajorVersion of stencil.
	MajorVersion = 0
	// MinorVersion of stencil.
	MinorVersion = 1
	// PatchVersion of stencil.
	PatchVersion = 0
)

// Version returns the three version components.
func Version() (int, int, int) {
	return MajorVersion, MinorVersion, PatchVersion
}

// VersionString returns the version in the usual dotted form.
func VersionString() string {
	return fmt.Sprintf("%d.%d.%d", MajorVersion, MinorVersion, PatchVersion)
}
