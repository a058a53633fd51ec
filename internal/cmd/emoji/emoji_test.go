package emoji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "✓ ok", Result(true, "ignored"))
	assert.Equal(t, "✗ no tickets remain for Curling", Result(false, "no tickets remain for Curling"))
}
