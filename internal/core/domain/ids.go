package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a resource identifier. The backend emits integers while older clients
// exchanged strings, so both JSON forms decode into the same value.
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id: expected string or number, got %s", b)
		}
		*id = ID(n.String())
		return nil
	}
}

// Tags is a list of card tags. The backend stores them as one comma
// separated string; the client works with a list.
type Tags []string

// UnmarshalJSON accepts either a JSON array of strings or a comma separated
// string.
func (t *Tags) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	if b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*t = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("tags: expected array or string, got %s", b)
	}
	*t = ParseTags(s)
	return nil
}

// UnmarshalParam decodes a comma separated form or query value.
func (t *Tags) UnmarshalParam(s string) error {
	*t = ParseTags(s)
	return nil
}

// String joins the tags the way the backend expects them in query strings.
func (t Tags) String() string {
	return strings.Join(t, ",")
}

// ParseTags splits a comma separated tag string, dropping empty entries.
func ParseTags(s string) Tags {
	var out Tags
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
