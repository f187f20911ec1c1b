package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtrValueRoundTrip(t *testing.T) {
	s := Ptr("http://10.0.0.5:8080")
	assert.Equal(t, "http://10.0.0.5:8080", Value(s))

	n := Ptr(42)
	assert.Equal(t, 42, Value(n))
}

func TestValueNilYieldsZero(t *testing.T) {
	assert.Equal(t, "", Value[string](nil))
	assert.Equal(t, 0, Value[int](nil))
}
