package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/knowcards/appshell/internal/core/domain"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Detail is the server-provided human-readable message, empty when the body
// carried none.
func (e *APIError) Detail() string { return e.Message }

// Is maps status codes onto the domain sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// parseDetail extracts a message from an error body. It understands
// {"detail": "..."}, FastAPI validation lists {"detail": [{"msg": ...}]}
// and the {"error": "..."} / {"message": "..."} envelopes.
func parseDetail(body []byte) string {
	var env struct {
		Detail  json.RawMessage `json:"detail"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &env) != nil {
		return ""
	}

	if len(env.Detail) > 0 {
		var s string
		if json.Unmarshal(env.Detail, &s) == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(env.Detail, &items) == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}
