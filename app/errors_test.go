package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFoundErr(CodePostNotFound, "post %v not found", 7))

	appErr, ok := AsError(err)
	assert.True(t, ok)
	assert.Equal(t, "post 7 not found", appErr.Message)
	assert.Equal(t, CodePostNotFound, CodeOf(err))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "PostNotFound: post 7 not found", appErr.Error())

	_, ok = AsError(fmt.Errorf("boom"))
	assert.False(t, ok)
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("boom")))
}
