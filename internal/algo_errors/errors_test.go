package algo_errors

import (
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleRemoteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrInvalidRequest},
		{http.StatusUnprocessableEntity, ErrInvalidRequest},
		{http.StatusUnauthorized, ErrUnAuthorized},
		{http.StatusForbidden, ErrUnAuthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrEntityAlreadyExist},
		{http.StatusInternalServerError, ErrRemoteApi},
		{http.StatusBadGateway, ErrRemoteApi},
	}

	for _, c := range cases {
		err := HandleRemoteError(&RemoteError{StatusCode: c.status, Message: "boom"}, "calling remote")
		assert.ErrorIs(t, err, c.want, "status %d", c.status)
	}
}

func TestHandleRemoteErrorKeepsMessage(t *testing.T) {
	err := HandleRemoteError(
		&RemoteError{StatusCode: http.StatusConflict, Message: "category already exists"},
		"creating category",
	)
	assert.Contains(t, err.Error(), "category already exists")

	err = HandleRemoteError(&RemoteError{StatusCode: http.StatusNotFound}, "fetching problem two-sum")
	assert.Contains(t, err.Error(), "fetching problem two-sum")
}

func TestWrapIPCError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := WrapIPCError(opErr)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "dial")

	err = WrapIPCError(errors.New("something else"))
	assert.ErrorIs(t, err, ErrInternal)
}
