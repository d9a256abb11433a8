package validators

import (
	"net/http"
	"strings"
)

// ParseOptionalBool reads an optional boolean query parameter. Only the
// literals "true" and "false" are recognized; anything else, including an
// absent parameter, yields nil.
func ParseOptionalBool(r *http.Request, key string) *bool {
	switch strings.TrimSpace(r.URL.Query().Get(key)) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
