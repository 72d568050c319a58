package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// RequestError is every failure the gateway reports: transport errors, non-2xx
// responses and undecodable bodies alike. Its message is meant for display.
type RequestError struct {
	Op         string // e.g. "Failed to load courses"
	StatusCode int    // 0 when no response arrived
	Status     string
	Message    string // short plain-text body from the server, if any
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != "" && e.Message != "":
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Status, e.Message)
	case e.Status != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *RequestError) Unwrap() error { return e.Err }

const maxMessage = 200

// Uniform HTTP error helper.
func httpErr(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxMessage+1))
	msg := strings.TrimSpace(string(b))
	if len(msg) > maxMessage || !utf8.ValidString(msg) || strings.HasPrefix(msg, "<") {
		msg = ""
	}
	return &RequestError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status, Message: msg}
}
