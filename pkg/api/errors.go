package api

import (
	"errors"
	"fmt"
)

// The dispatcher normalizes every failure into one of four kinds so call
// sites can map them onto a single user-visible notification path:
//
//	NetworkUnavailable: the transport failed before a response arrived
//	Timeout:            the request exceeded the client deadline
//	ServerRejected:     non-2xx status, or a 2xx body with success=false
//	Malformed:          the body did not decode into the expected shape
var (
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrTimeout            = errors.New("request timed out")
)

type ServerRejectedError struct {
	Status int
	Reason string
}

func (e *ServerRejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("server rejected request: %s", e.Reason)
	}
	return fmt.Sprintf("server rejected request: status %d", e.Status)
}

type MalformedError struct {
	Endpoint string
	Err      error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func IsServerRejected(err error) bool {
	var sr *ServerRejectedError
	return errors.As(err, &sr)
}

func IsMalformed(err error) bool {
	var m *MalformedError
	return errors.As(err, &m)
}
