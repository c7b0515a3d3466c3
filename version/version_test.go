package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	i := Info{Version: "v1.2.0", CommitHash: "0123456789abcdef", SchemaVersion: "1.0.0"}
	assert.Equal(t, "fsdefs v1.2.0 (commit 0123456, schema 1.0.0)", i.String())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, "1.0.0", info.SchemaVersion)
	assert.Contains(t, info.Platform, "/")
}
