package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDevBuild(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	assert.True(t, IsDevBuild())

	Version = "1.2.0"
	assert.False(t, IsDevBuild())
	assert.Contains(t, UserAgent(), "verlog/1.2.0 (")
}
