package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	previous := Version
	t.Cleanup(func() { Version = previous })

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", GetVersion())

	Version = ""
	assert.NotEmpty(t, GetVersion())
}
