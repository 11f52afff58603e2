package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	Version, Commit, Date = "v1.2.0", "abc123", "2024-03-04"
	info := Get()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Contains(t, GetVersionInfo(), "tinyworkout v1.2.0 (commit: abc123, built: 2024-03-04")
}
