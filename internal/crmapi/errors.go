package crmapi

import (
	"errors"
	"fmt"
)

// Kind classifies a sync failure.
type Kind int

const (
	// KindNetwork covers connection failures and non-2xx responses after
	// every attempt was used.
	KindNetwork Kind = iota + 1
	// KindProtocol is a response that is not a valid envelope.
	KindProtocol
	// KindRejected is a well-formed envelope with status "error".
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against a *SyncError of the same kind.
var (
	ErrNetwork  = errors.New("network error")
	ErrProtocol = errors.New("protocol error")
	ErrRejected = errors.New("rejected by server")
)

// SyncError is returned by every Client operation that fails.
type SyncError struct {
	Kind    Kind
	Op      string
	Message string
	// Attempts is how many requests were sent before giving up.
	Attempts int
	// StatusCode is the last HTTP status seen, or 0.
	StatusCode int
	Err        error
}

func (e *SyncError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNetwork) and friends match by kind.
func (e *SyncError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrProtocol:
		return e.Kind == KindProtocol
	case ErrRejected:
		return e.Kind == KindRejected
	}
	return false
}

// Hint returns a short explanation suitable for end users.
func (e *SyncError) Hint() string {
	switch e.Kind {
	case KindNetwork:
		return "Network error. Please check your internet connection and try again."
	case KindProtocol:
		if errors.Is(e.Err, errHTMLResponse) {
			return "Server configuration error. The backend script might not be accessible."
		}
		return "Invalid response from server."
	default:
		return e.Message
	}
}

// KindOf returns the kind of the first *SyncError in err's chain, or 0.
func KindOf(err error) Kind {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsKind reports whether err carries a *SyncError of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

var (
	errHTMLResponse = errors.New("server returned HTML instead of JSON")
	errInvalidJSON  = errors.New("invalid JSON response from server")
)

func networkError(op string, attempts, status int, err error) *SyncError {
	msg := fmt.Sprintf("request failed after %d attempt(s)", attempts)
	return &SyncError{Kind: KindNetwork, Op: op, Message: msg, Attempts: attempts, StatusCode: status, Err: err}
}

func protocolError(op string, attempts int, err error) *SyncError {
	return &SyncError{Kind: KindProtocol, Op: op, Message: "unexpected response", Attempts: attempts, Err: err}
}

func rejectedError(op string, attempts int, message string) *SyncError {
	return &SyncError{Kind: KindRejected, Op: op, Message: message, Attempts: attempts}
}

// UserMessage returns the Hint of a *SyncError in err's chain, or err's text.
func UserMessage(err error) string {
	var se *SyncError
	if errors.As(err, &se) {
		if hint := se.Hint(); hint != "" {
			return hint
		}
	}
	return err.Error()
}
