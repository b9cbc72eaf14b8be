package client

import (
	"fmt"
)

type ErrorKind int

const (
	// TransportError means no response was received.
	TransportError ErrorKind = iota + 1
	// StatusError means the response carried a status other than 200 or 201.
	StatusError
)

func (k ErrorKind) String() string {
	switch k {
	case TransportError:
		return "transport"
	case StatusError:
		return "status"
	default:
		return "unknown"
	}
}

// RequestError is the single failure type of the request engine.
type RequestError struct {
	Kind       ErrorKind
	Endpoint   string
	Method     string
	StatusCode int
	Message    string
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Kind == StatusError {
		msg := fmt.Sprintf("%s %s failed: http status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
		if e.Detail != "" {
			msg += " (" + e.Detail + ")"
		}
		return msg
	}
	return fmt.Sprintf("%s %s failed: %v", e.Method, e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
