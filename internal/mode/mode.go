// Package mode resolves the source and output roots of a compile run.
//
// Two fixed profiles exist. The normal profile reads <root>/src and writes
// <root>/dist; the test profile reads <root>/test/src and writes <root>/test/build.
package mode

import "path/filepath"

// Name identifies a profile.
type Name string

const (
	Normal Name = "normal"
	Test   Name = "test"
)

// Profile is the resolved layout for one run.
type Profile struct {
	Name       Name
	SourceRoot string
	OutputRoot string
	TestMode   bool
}

// Resolve returns the profile for root. It performs no filesystem access.
func Resolve(root string, testMode bool) Profile {
	if testMode {
		return Profile{
			Name:       Test,
			SourceRoot: filepath.Join(root, "test", "src"),
			OutputRoot: filepath.Join(root, "test", "build"),
			TestMode:   true,
		}
	}
	return Profile{
		Name:       Normal,
		SourceRoot: filepath.Join(root, "src"),
		OutputRoot: filepath.Join(root, "dist"),
	}
}

// FromArgs reports whether the invocation arguments request test mode.
// Any argument equal to "test" selects it; everything else is ignored.
func FromArgs(args []string) bool {
	for _, a := range args {
		if a == string(Test) {
			return true
		}
	}
	return false
}
