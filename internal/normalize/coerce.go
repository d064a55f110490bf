package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// displayKeys is the order in which an object is searched for a display
// value. Callers depend on which key wins, so the order is fixed.
var displayKeys = []string{"value", "name", "label", "content", "title", "skill", "item"}

// String coerces a loosely typed value into display text. It never fails:
// anything it cannot interpret becomes "".
func String(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case []string:
		parts := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, it := range t {
			if s := String(it); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		for _, k := range displayKeys {
			if s := String(t[k]); s != "" {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}

// unresolvable reports whether v carried something that String had to
// throw away. Empty strings, empty lists and nil are simply absent.
func unresolvable(v interface{}) bool {
	switch t := v.(type) {
	case nil, string:
		return false
	case []interface{}:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	case bool:
		return t
	default:
		return true
	}
}

// asList accepts the slice shapes produced by encoding/json and by Go callers.
func asList(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	case []string:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	default:
		return nil, false
	}
}
