package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]struct{}, 1000)
	var last int64
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		_, dup := seen[id]
		assert.False(t, dup)
		assert.Greater(t, id, last)
		seen[id] = struct{}{}
		last = id
	}
	assert.NotEmpty(t, UUIDString())
}
