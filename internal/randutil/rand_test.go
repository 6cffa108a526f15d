package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64(), "draw %d", i)
	}
}

func TestFloat64Range(t *testing.T) {
	next := Float64(7)
	for i := 0; i < 1000; i++ {
		v := next()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSequenceWraps(t *testing.T) {
	next := Sequence(0.1, 0.9)
	assert.Equal(t, 0.1, next())
	assert.Equal(t, 0.9, next())
	assert.Equal(t, 0.1, next())

	empty := Sequence()
	assert.Equal(t, 0.0, empty())
}
