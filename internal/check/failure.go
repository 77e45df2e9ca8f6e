package check

import (
	"context"
	"errors"
	"net"
)

// Kind classifies why a check failed.
type Kind string

const (
	KindMissingArtifact Kind = "missing_artifact"
	KindCommandFailure  Kind = "command_failure"
	KindTimeout         Kind = "timeout"
	KindNetwork         Kind = "network_error"
	KindInvalidResponse Kind = "invalid_response"
	KindAuth            Kind = "auth_failure"
)

// Failure is a classified check error. Checks return it so the reporter can
// render the category alongside the message; plain errors are still accepted
// and rendered unclassified.
type Failure struct {
	Kind Kind
	Msg  string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil && f.Msg != "" {
		return f.Msg + ": " + f.Err.Error()
	}
	if f.Err != nil {
		return f.Err.Error()
	}
	return f.Msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Fail builds a classified failure with a message.
func Fail(kind Kind, msg string) *Failure {
	return &Failure{Kind: kind, Msg: msg}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, msg string, err error) *Failure {
	return &Failure{Kind: kind, Msg: msg, Err: err}
}

// ClassifyNet maps a transport error to KindTimeout or KindNetwork. Deadline
// expiry (client timeout or context timeout) counts as a timeout; everything
// else (refused, reset, DNS) is a network error.
func ClassifyNet(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// KindOf extracts the Kind from an error, or "" for unclassified errors.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
