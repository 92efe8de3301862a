package bridge

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Response wraps a raw JSON response from the native analyzer. Every
// accessor returns (value, false) on a missing key or a type mismatch;
// none of them ever faults, per the bridge's typed-façade contract.
type Response struct {
	raw string
}

// NewResponse wraps raw bytes as a Response.
func NewResponse(raw []byte) *Response { return &Response{raw: string(raw)} }

// keyPath escapes the dots in a native key name such as "key.offset" so
// gjson and sjson treat it as one flat dictionary key, not a nested path.
func keyPath(key string) string { return strings.ReplaceAll(key, ".", `\.`) }

func (r *Response) get(key string) gjson.Result {
	return gjson.Get(r.raw, keyPath(key))
}

// String returns the string value at key.
func (r *Response) String(key string) (string, bool) {
	v := r.get(key)
	if !v.Exists() || v.Type != gjson.String {
		return "", false
	}
	return v.String(), true
}

// Int returns the integer value at key.
func (r *Response) Int(key string) (int, bool) {
	v := r.get(key)
	if !v.Exists() || v.Type != gjson.Number {
		return 0, false
	}
	return int(v.Int()), true
}

// UID returns the value at key interpreted as a UID.
func (r *Response) UID(key string) (UID, bool) {
	s, ok := r.String(key)
	if !ok {
		return "", false
	}
	return UID(s), true
}

// Bool returns the boolean value at key.
func (r *Response) Bool(key string) (bool, bool) {
	v := r.get(key)
	if !v.Exists() || v.Type != gjson.True && v.Type != gjson.False {
		return false, false
	}
	return v.Bool(), true
}

// Array returns the array at key as a slice of child Responses, preserving
// order. Returns (nil, false) if key is missing or not an array.
func (r *Response) Array(key string) ([]*Response, bool) {
	v := r.get(key)
	if !v.Exists() || !v.IsArray() {
		return nil, false
	}
	var out []*Response
	v.ForEach(func(_, value gjson.Result) bool {
		out = append(out, &Response{raw: value.Raw})
		return true
	})
	return out, true
}

// Raw returns the underlying JSON document.
func (r *Response) Raw() []byte { return []byte(r.raw) }

// HasKey reports whether key is present at all, regardless of type.
func (r *Response) HasKey(key string) bool {
	return r.get(key).Exists()
}
