package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3"
	assert.Equal(t, "doccompile v1.2.3 (commit unknown, built unknown)", String())
}

func TestBuildInfo(t *testing.T) {
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}
