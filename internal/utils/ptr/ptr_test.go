package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	n := 2
	p := To(n)
	assert.Equal(t, 2, *p)
	assert.NotSame(t, &n, p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 3, Deref(To(3), 7))
	assert.Equal(t, 7, Deref[int](nil, 7))
	assert.False(t, Deref[bool](nil, false))
}
