package algo_errors

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInternal           = errors.New("internal service error. please try again later")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnAuthorized       = errors.New("user not allowed to perform this action")
	ErrNotFound           = errors.New("entity not found")
	ErrRemoteApi          = errors.New("error occurred with remote api response")
	ErrEntityAlreadyExist = errors.New("entity with given key already exist")
)

// RemoteError is the decoded error body of a failed remote api call.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (r *RemoteError) Error() string {
	if r.Message == "" {
		return fmt.Sprintf("remote api responded with status %d", r.StatusCode)
	}
	return fmt.Sprintf("remote api responded with status %d: %s", r.StatusCode, r.Message)
}

// HandleRemoteError maps a remote api failure onto the sentinel errors,
// keeping the remote message visible to the caller.
func HandleRemoteError(
	remoteErr *RemoteError,
	contextMessage string,
) error {
	var sentinel error
	switch remoteErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = ErrInvalidRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrUnAuthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrEntityAlreadyExist
	default:
		// unknown error
		err := fmt.Errorf(
			"%w, %s, %w",
			ErrRemoteApi,
			contextMessage,
			remoteErr,
		)
		log.Error(err)
		return err
	}

	msg := remoteErr.Message
	if msg == "" {
		msg = contextMessage
	}
	err := fmt.Errorf("%w, %s", sentinel, msg)
	log.WithField("status", remoteErr.StatusCode).Warn(err)
	return err
}

// handles errors raised while talking to the remote api over the network
func WrapIPCError(err error) error {
	var opError *net.OpError
	if errors.As(err, &opError) {
		err = fmt.Errorf(
			"%w, \"%s\" error occurred during \"%s\" operation, network: %s, dest: %s",
			ErrInternal,
			opError.Error(),
			opError.Op,
			opError.Net,
			opError.Addr,
		)
		return err
	}

	// unknown error
	err = fmt.Errorf(
		"%w, %w", ErrInternal, err,
	)
	return err
}
