package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("no user: %s", "u1")))
	assert.Equal(t, KindDuplicate, KindOf(Duplicate("duplicate username: u1")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("invalid username/password")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("not yours")))
	assert.Equal(t, KindEmptyUpdate, KindOf(EmptyUpdate()))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest(nil, "bad")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("no holding: 7"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
}

func TestBadRequest_UnwrapsCause(t *testing.T) {
	cause := NotFound("no portfolio: 3")
	err := BadRequest(cause, "could not load portfolios for %s", "u1")
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "u1")
	assert.Contains(t, err.Error(), "no portfolio: 3")
}
