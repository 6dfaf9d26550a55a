package replicator

import (
	"strconv"
)

// DecodeDocument unwraps a change-data-capture document payload, where every
// leaf is wrapped in an explicit type tag, into plain values. A nil return
// means the payload is missing the expected "fields" shape and the caller
// should skip it; that is a no-op, not a failure.
func DecodeDocument(doc map[string]any) map[string]any {
	fields, ok := doc["fields"].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]any, len(fields))
	for name, raw := range fields {
		tagged, _ := raw.(map[string]any)
		out[name] = decodeValue(tagged)
	}
	return out
}

// decodeValue dispatches on the closed set of value tags. Untagged or
// unrecognized values decode to nil.
func decodeValue(tagged map[string]any) any {
	for tag, v := range tagged {
		switch tag {
		case "stringValue":
			s, _ := v.(string)
			return s
		case "integerValue":
			// The wire format carries integers as decimal strings.
			switch n := v.(type) {
			case string:
				i, err := strconv.ParseInt(n, 10, 64)
				if err != nil {
					return nil
				}
				return i
			case float64:
				return int64(n)
			}
			return nil
		case "doubleValue":
			f, _ := v.(float64)
			return f
		case "booleanValue":
			b, _ := v.(bool)
			return b
		case "timestampValue":
			s, _ := v.(string)
			return s
		case "mapValue":
			m, _ := v.(map[string]any)
			return DecodeDocument(m)
		case "arrayValue":
			m, _ := v.(map[string]any)
			values, _ := m["values"].([]any)
			out := make([]any, 0, len(values))
			for _, el := range values {
				t, _ := el.(map[string]any)
				out = append(out, decodeValue(t))
			}
			return out
		case "nullValue":
			return nil
		}
	}
	return nil
}
