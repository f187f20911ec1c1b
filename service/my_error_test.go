package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMyError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewMyError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
}

func TestNewIOError(t *testing.T) {
	e := NewIOError("store failed", nil)
	require.NotNil(t, e)
	assert.Equal(t, ErrIO, e.Code)
	assert.Equal(t, "store failed", e.Message)
}

func TestNewIOError_PassesThroughClassifiedInner(t *testing.T) {
	inner := NewIllegalStateError("registry is STOPPED", nil)
	e := NewIOError("wrapping should not reclassify", inner)
	require.NotNil(t, e)
	assert.Same(t, inner, e)
	assert.True(t, IsIllegalStateError(e))
	assert.False(t, IsIOError(e))
}

func TestNewIOError_PassesThroughWrappedClassifiedInner(t *testing.T) {
	inner := fmt.Errorf("context: %w", NewEntityNotFoundError("gone", nil))
	e := NewIOError("boundary", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrEntityNotFound, e.Code)
}

func TestNewIllegalStateError(t *testing.T) {
	e := NewIllegalStateError("not started", nil)
	require.NotNil(t, e)
	assert.Equal(t, ErrIllegalState, e.Code)
	assert.True(t, IsIllegalStateError(e))
}

func TestNewInvalidEndpointError(t *testing.T) {
	e := NewInvalidEndpointError("no scheme", nil)
	require.NotNil(t, e)
	assert.Equal(t, ErrInvalidEndpoint, e.Code)
	assert.True(t, IsInvalidEndpointError(e))
}

func TestMyError_Error(t *testing.T) {
	withInner := NewMyError(ErrIO, "write failed", errors.New("conn reset"))
	assert.Equal(t, "io_error write failed: conn reset", withInner.Error())

	withoutInner := NewMyError(ErrIO, "write failed", nil)
	assert.Equal(t, "io_error write failed", withoutInner.Error())
}

func TestToMyError_WithMyError(t *testing.T) {
	e := NewBadParameterError("bad", nil)
	got := ToMyError(e)
	require.NotNil(t, got)
	assert.Same(t, e, got)
}

func TestToMyError_WithOrdinaryError(t *testing.T) {
	e := errors.New("plain")
	got := ToMyError(e)
	assert.Nil(t, got)
}

func TestToMyErrorCode(t *testing.T) {
	assert.Equal(t, ErrIO, ToMyErrorCode(NewIOError("x", nil)))
	assert.Equal(t, "", ToMyErrorCode(errors.New("plain")))
	assert.Equal(t, "", ToMyErrorCode(nil))
}

func TestIsEntityNotFoundError(t *testing.T) {
	e := NewEntityNotFoundError("gone", nil)
	assert.True(t, IsEntityNotFoundError(e))
}

func TestIsPortUndefinedError(t *testing.T) {
	e := NewIOError("port undefined in http://svc", ErrPortUndefined)
	assert.True(t, IsPortUndefinedError(e))
	assert.True(t, IsIOError(e))

	plain := NewIOError("other io failure", errors.New("boom"))
	assert.False(t, IsPortUndefinedError(plain))
}

func TestMyError_UnwrapReachesInner(t *testing.T) {
	sentinel := errors.New("sentinel")
	e := NewIOError("outer", fmt.Errorf("mid: %w", sentinel))
	assert.True(t, errors.Is(e, sentinel))
}
