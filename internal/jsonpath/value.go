package jsonpath

import (
	"bytes"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// EmptyKey is the member name used in a Record for the empty JSON key.
const EmptyKey = "_empty_"

// Record is a JSON object decoded with its member order preserved.
// Setting an existing key replaces the value and keeps its position.
type Record struct {
	keys   []string
	values map[string]any
}

func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

func (r *Record) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the member names in insertion order.
func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int {
	return len(r.keys)
}

// Map converts the record and every nested record into plain maps.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		m[k] = Plain(r.values[k])
	}
	return m
}

// MarshalJSON encodes the members in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML keeps the member order in YAML output.
func (r *Record) MarshalYAML() (any, error) {
	items := make(yaml.MapSlice, 0, len(r.keys))
	for _, k := range r.keys {
		items = append(items, yaml.MapItem{Key: k, Value: r.values[k]})
	}
	return items, nil
}

// OrderedMap is the object shape built when objects are decoded as maps.
// Unlike a Record it keeps the empty key as is; member order is preserved
// the same way.
type OrderedMap struct {
	Record
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{Record: Record{values: make(map[string]any)}}
}

// Plain converts a materialized value into the shapes produced by
// encoding/json: records become maps and integers become float64.
func Plain(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.Map()
	case *OrderedMap:
		return val.Map()
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = Plain(item)
		}
		return m
	case []any:
		list := make([]any, len(val))
		for i, item := range val {
			list[i] = Plain(item)
		}
		return list
	case int64:
		return float64(val)
	default:
		return v
	}
}

// container is one in-progress value on a build stack.
type container struct {
	kind   containerKind
	list   []any
	record *Record
	object *OrderedMap
}

func newContainer(kind containerKind, objectsAsMaps bool) container {
	switch {
	case kind == kindArr:
		return container{kind: kindArr, list: make([]any, 0)}
	case objectsAsMaps:
		return container{kind: kindObj, object: NewOrderedMap()}
	default:
		return container{kind: kindObj, record: NewRecord()}
	}
}

// insert places v according to the frame that encloses it: appended for
// arrays, stored under the current key for objects.
func (c *container) insert(f frame, v any) {
	switch {
	case c.kind == kindArr:
		c.list = append(c.list, v)
	case c.object != nil:
		c.object.Set(f.key, v)
	default:
		key := f.key
		if key == "" {
			key = EmptyKey
		}
		c.record.Set(key, v)
	}
}

func (c *container) value() any {
	switch {
	case c.kind == kindArr:
		return c.list
	case c.object != nil:
		return c.object
	default:
		return c.record
	}
}
