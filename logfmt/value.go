package logfmt

import (
	"fmt"
	"strconv"
)

// Kind represents value kinds accepted by the encoder.
type Kind uint8

const (
	KindUndef Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindStr
	KindThunk
	KindList
	KindMap
	KindRaw
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUndef:
		return "undef"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindThunk:
		return "thunk"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Value is one node of an event payload. Lists and maps are compared by
// pointer identity during encoding, so the same *Value reached twice in
// one call is a shared reference, not a copy.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	uintVal  uint64
	floatVal float64
	strVal   string

	thunkVal func() *Value

	listVal []*Value
	mapVal  []MapEntry

	rawVal any
}

// MapEntry represents a key-value pair in a map.
type MapEntry struct {
	Key   string
	Value *Value
}

// Field creates a MapEntry for use in Map construction.
func Field(key string, value *Value) MapEntry {
	return MapEntry{Key: key, Value: value}
}

// Undef creates an explicit-absence value. It encodes as ~missing~.
func Undef() *Value {
	return &Value{kind: KindUndef}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Uint creates an unsigned integer value.
func Uint(v uint64) *Value {
	return &Value{kind: KindUint, uintVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindStr, strVal: v}
}

// Thunk creates a deferred value. The producer runs once per occurrence
// at encode time; a nil producer or a nil result encodes as Undef. A
// producer yielding another deferred value is not run again; the residue
// encodes as the scalar ~thunk~.
func Thunk(fn func() *Value) *Value {
	if fn == nil {
		return Undef()
	}
	return &Value{kind: KindThunk, thunkVal: fn}
}

// List creates a list value.
func List(values ...*Value) *Value {
	return &Value{kind: KindList, listVal: values}
}

// Map creates a map value from key-value pairs. Entry order does not
// matter; encoding visits entries in ascending lexical key order.
func Map(entries ...MapEntry) *Value {
	return &Value{kind: KindMap, mapVal: entries}
}

// Raw creates a pre-rendered value: encoded via generic stringification,
// never recursed into. The escape hatch for embedding an already
// serialized blob without double-encoding it.
func Raw(v any) *Value {
	return &Value{kind: KindRaw, rawVal: v}
}

// Any coerces a native Go value into a *Value. Unrecognized types fall
// back to Raw.
func Any(v any) *Value {
	switch x := v.(type) {
	case nil:
		return Undef()
	case *Value:
		if x == nil {
			return Undef()
		}
		return x
	case func() *Value:
		return Thunk(x)
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case string:
		return Str(x)
	case []byte:
		return Str(string(x))
	case error:
		return Str(x.Error())
	case []*Value:
		return List(x...)
	case []any:
		items := make([]*Value, len(x))
		for i, item := range x {
			items[i] = Any(item)
		}
		return List(items...)
	case []MapEntry:
		return Map(x...)
	case map[string]any:
		entries := make([]MapEntry, 0, len(x))
		for k, item := range x {
			entries = append(entries, MapEntry{Key: k, Value: Any(item)})
		}
		return Map(entries...)
	case map[string]string:
		entries := make([]MapEntry, 0, len(x))
		for k, item := range x {
			entries = append(entries, MapEntry{Key: k, Value: Str(item)})
		}
		return Map(entries...)
	default:
		return Raw(x)
	}
}

// Kind returns the value kind. A nil value reads as undef.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindUndef
	}
	return v.kind
}

// IsUndef returns true for nil and explicit-absence values.
func (v *Value) IsUndef() bool {
	return v == nil || v.kind == KindUndef
}

// Len returns the length of a list or map, zero otherwise.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindList:
		return len(v.listVal)
	case KindMap:
		return len(v.mapVal)
	default:
		return 0
	}
}

// Get returns a map entry's value by key, nil when absent.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindMap {
		return nil
	}
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Index returns the i-th element of a list.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindList {
		return nil, fmt.Errorf("logfmt: not a list")
	}
	if i < 0 || i >= len(v.listVal) {
		return nil, fmt.Errorf("logfmt: index %d out of bounds (len=%d)", i, len(v.listVal))
	}
	return v.listVal[i], nil
}

// Set sets a map entry, replacing an existing key in place.
func (v *Value) Set(key string, val *Value) {
	if v == nil || v.kind != KindMap {
		panic("logfmt: cannot set on non-map")
	}
	for i := range v.mapVal {
		if v.mapVal[i].Key == key {
			v.mapVal[i].Value = val
			return
		}
	}
	v.mapVal = append(v.mapVal, MapEntry{Key: key, Value: val})
}

// Append adds a value to a list.
func (v *Value) Append(val *Value) {
	if v == nil || v.kind != KindList {
		panic("logfmt: cannot append to non-list")
	}
	v.listVal = append(v.listVal, val)
}

// force evaluates a deferred value once. Anything else passes through.
func (v *Value) force() *Value {
	if v == nil {
		return Undef()
	}
	if v.kind != KindThunk {
		return v
	}
	out := v.thunkVal()
	if out == nil {
		return Undef()
	}
	return out
}

// text renders a scalar via generic stringification. Containers never
// reach here; the encoder expands or collapses them first.
func (v *Value) text() string {
	switch v.kind {
	case KindUndef:
		return "~missing~"
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindUint:
		return strconv.FormatUint(v.uintVal, 10)
	case KindFloat:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case KindStr:
		return v.strVal
	case KindRaw:
		return fmt.Sprint(v.rawVal)
	case KindThunk:
		// A producer returned another deferred value. It is not run
		// again; the residue renders as a fixed placeholder.
		return "~thunk~"
	default:
		return fmt.Sprintf("%v", v)
	}
}
