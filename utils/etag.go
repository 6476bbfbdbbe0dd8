package utils

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ETag returns a weak validator for a response body.
func ETag(body []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body))
}

// ETagMatches reports whether an If-None-Match header value names etag.
func ETagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag || "W/"+candidate == etag {
			return true
		}
	}
	return false
}
