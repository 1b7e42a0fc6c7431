package crmapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope is the {status, data, message} wrapper around every backend reply.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

var htmlMarkers = []string{"<html", "<body", "<!doctype", "fatal error"}

// looksLikeHTML reports whether body is an error page rather than JSON.
func looksLikeHTML(body []byte) bool {
	lower := bytes.ToLower(body)
	for _, m := range htmlMarkers {
		if bytes.Contains(lower, []byte(m)) {
			return true
		}
	}
	return false
}

// decodeEnvelope parses body and classifies the outcome. A status of "error"
// yields KindRejected with the server message or fallback.
func decodeEnvelope(op string, attempts int, body []byte, fallback string) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if looksLikeHTML(body) {
			return envelope{}, protocolError(op, attempts, errHTMLResponse)
		}
		return envelope{}, protocolError(op, attempts, fmt.Errorf("%w: %v", errInvalidJSON, err))
	}

	switch strings.ToLower(strings.TrimSpace(env.Status)) {
	case statusSuccess:
		return env, nil
	case statusError:
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = fallback
		}
		return envelope{}, rejectedError(op, attempts, msg)
	default:
		return envelope{}, protocolError(op, attempts, fmt.Errorf("unknown envelope status %q", env.Status))
	}
}

// hasData reports whether the envelope carries a non-null data field.
func (e envelope) hasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// preview returns the first n bytes of body for logging.
func preview(body []byte, n int) string {
	if len(body) > n {
		body = body[:n]
	}
	return string(body)
}
