// ABOUTME: Deep sanitization of enhancement payloads before serialization
// ABOUTME: Maps recurse key-wise, slices element-wise, non-finite floats become 0
package recommend

import (
	"fmt"
	"math"
)

// SanitizeMap returns a copy of m that is safe to encode as JSON: no NaN or
// infinity and no non-primitive leaf types. The shapes flowing through here
// are the closed set produced by decoding model output (maps, slices, and
// scalars), so this is a typed walk rather than reflection.
func SanitizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		return t
	case string:
		return t
	case int:
		return t
	case int64:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0.0
		}
		return t
	case float32:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0.0
		}
		return f
	case map[string]any:
		return SanitizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = sanitizeValue(e)
		}
		return out
	default:
		// Anything outside the known set is coerced to its string form
		return fmt.Sprintf("%v", t)
	}
}
