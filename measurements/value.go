// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package measurements

import (
	"encoding/json"
	"fmt"
)

// Kind tells which alternative a Value holds.
type Kind uint8

const (
	// Number is a numeric SenML value ("v").
	Number Kind = iota + 1
	// String is a string SenML value ("vs").
	String
	// Bool is a boolean SenML value ("vb").
	Bool
)

var kinds = map[Kind]string{
	Number: "number",
	String: "string",
	Bool:   "bool",
}

func (k Kind) String() string {
	if s, ok := kinds[k]; ok {
		return s
	}
	return "unknown"
}

// Value holds exactly one of a number, a string or a boolean.
// The zero Value holds nothing and is never produced by Map.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// NumberValue returns a numeric Value.
func NumberValue(v float64) Value {
	return Value{kind: Number, num: v}
}

// StringValue returns a string Value.
func StringValue(v string) Value {
	return Value{kind: String, str: v}
}

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value {
	return Value{kind: Bool, b: v}
}

func (v Value) Kind() Kind {
	return v.kind
}

// AsFloat returns the numeric value and whether the Value holds one.
func (v Value) AsFloat() (float64, bool) {
	return v.num, v.kind == Number
}

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == String
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == Bool
}

// Interface returns the held value as float64, string or bool, or nil for
// the zero Value.
func (v Value) Interface() interface{} {
	switch v.kind {
	case Number:
		return v.num
	case String:
		return v.str
	case Bool:
		return v.b
	default:
		return nil
	}
}

// MarshalJSON encodes the held value as a bare JSON number, string or bool.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case float64:
		*v = NumberValue(val)
	case string:
		*v = StringValue(val)
	case bool:
		*v = BoolValue(val)
	default:
		return fmt.Errorf("unsupported measurement value %s", string(data))
	}

	return nil
}
