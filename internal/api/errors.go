package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusError is returned for any non-2xx backend response.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

// errorBody covers the shapes the backend uses for failures.
type errorBody struct {
	Errors  json.RawMessage `json:"errors"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// backendMessage pulls a human readable reason out of an error body.
func backendMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if len(eb.Errors) > 0 {
		var s string
		if err := json.Unmarshal(eb.Errors, &s); err == nil {
			return strings.TrimSpace(s)
		}
		var list []string
		if err := json.Unmarshal(eb.Errors, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}
	if eb.Message != "" {
		return strings.TrimSpace(eb.Message)
	}
	return strings.TrimSpace(eb.Error)
}
