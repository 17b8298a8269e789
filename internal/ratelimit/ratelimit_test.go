package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowIsPerKey(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 2)

	assert.True(t, l.Allow("me"))
	assert.True(t, l.Allow("me"))
	assert.False(t, l.Allow("me"))

	assert.True(t, l.Allow("other"))
}
