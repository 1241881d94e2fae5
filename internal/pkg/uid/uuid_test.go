package uid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUID_Generate(t *testing.T) {
	gen := NewUUID()

	a, b := gen.Generate(), gen.Generate()
	assert.True(t, Valid(a))
	assert.True(t, Valid(b))
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("not-a-uuid"))
	assert.True(t, Valid("0190e2b4-8f1a-7c3e-9d2b-5a6f7e8d9c0b"))
}
