package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, WrapWithCode(nil, CodeInternal, "nothing"))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit code", WrapWithCode(fmt.Errorf("boom"), CodeInvalidInput, "bad id"), CodeInvalidInput},
		{"sentinel not found", fmt.Errorf("load story: %w", ErrNotFound), CodeNotFound},
		{"sentinel forbidden", Wrap(ErrForbidden, "viewers"), CodeForbidden},
		{"unknown", fmt.Errorf("db down"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Wrap(ErrForbidden, "viewers")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthorized))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(ErrRateLimited))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("db down")))
}

func TestMessageAndUnwrap(t *testing.T) {
	err := Wrap(ErrNotFound, "story s1")
	assert.Equal(t, "story s1", GetMessage(err))
	assert.Equal(t, "story s1: not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
}
