package event

// Context is an ordered string-keyed map of contextual signals attached to an
// error event. Insertion order is preserved so that serialized events and
// derived fingerprints stay deterministic.
//
// Typed accessors degrade gracefully: a missing key or a value of the wrong
// type reads as absent rather than failing, per the engine's totality
// contract.
type Context struct {
	keys   []string
	values map[string]any
}

// NewContext returns an empty context.
func NewContext() Context {
	return Context{values: make(map[string]any)}
}

// Set stores a value under key, preserving first-insertion order. Setting an
// existing key overwrites its value in place. The receiver is returned for
// chaining during event construction.
func (c Context) Set(key string, value any) Context {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
	return c
}

// Get returns the raw value for key and whether it is present.
func (c Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Bool returns the boolean value for key. The second return is false when
// the key is absent or holds a non-boolean value.
func (c Context) Bool(key string) (bool, bool) {
	v, ok := c.values[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// String returns the string value for key. The second return is false when
// the key is absent or holds a non-string value.
func (c Context) String(key string) (string, bool) {
	v, ok := c.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Number returns the numeric value for key as a float64, accepting any Go
// numeric type. The second return is false when the key is absent or holds
// a non-numeric value.
func (c Context) Number(key string) (float64, bool) {
	v, ok := c.values[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Keys returns the context keys in insertion order.
func (c Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of keys in the context.
func (c Context) Len() int {
	return len(c.keys)
}

// Map returns the context as a plain map, suitable for handing to rule
// evaluation or serialization. The returned map is a copy.
func (c Context) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
