package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

var sensitiveAttributeKeys = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"authorization",
}

// SafeAttributes filters out attributes whose key looks like a
// credential. Span data ends up in external collectors, so secrets
// must never ride along.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	safe := attrs[:0]
	for _, attr := range attrs {
		if isSensitiveKey(string(attr.Key)) {
			continue
		}
		safe = append(safe, attr)
	}
	return safe
}

// SafeError reduces an error to its type name before it is recorded on
// a span. Error messages can embed DSNs, URLs, or request bodies.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%T", err)
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, needle := range sensitiveAttributeKeys {
		if strings.Contains(key, needle) {
			return true
		}
	}
	return false
}
