package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultVariants(t *testing.T) {
	ok := Ok([]int{1, 2, 3})
	assert.True(t, ok.IsOK())
	assert.False(t, ok.IsEmpty())
	assert.False(t, ok.IsFailed())
	assert.Equal(t, []int{1, 2, 3}, ok.Value())
	assert.NoError(t, ok.Err())

	empty := Empty[[]int]()
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsOK())
	assert.Nil(t, empty.Value())

	cause := errors.New("rate limited")
	failed := Fail[[]int](cause)
	assert.True(t, failed.IsFailed())
	assert.ErrorIs(t, failed.Err(), cause)
	assert.Nil(t, failed.Value())
}
