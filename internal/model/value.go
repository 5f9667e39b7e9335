// Package model holds the scene entity (Cell), its persisted snapshot
// (Store) and the variant registry the engine builds cells from.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

type valueKind uint8

const (
	unset valueKind = iota
	number
	text
)

// Value is a data field: a logical number, or a string holding a physical
// pixel coordinate. The zero Value is unset; merging an unset value into a
// cell deletes the field.
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// Num returns a numeric value.
func Num(f float64) Value {
	return Value{kind: number, num: f}
}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: text, str: s}
}

func (v Value) IsSet() bool { return v.kind != unset }
func (v Value) IsNum() bool { return v.kind == number }
func (v Value) IsStr() bool { return v.kind == text }

// Float returns the numeric value. Strings are parsed; anything that does
// not parse, and unset values, return 0.
func (v Value) Float() float64 {
	switch v.kind {
	case number:
		return v.num
	case text:
		f, _ := strconv.ParseFloat(v.str, 64)
		return f
	}
	return 0
}

// Text returns the string form of the value.
func (v Value) Text() string {
	switch v.kind {
	case number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case text:
		return v.str
	}
	return ""
}

func (v Value) String() string {
	switch v.kind {
	case number:
		return v.Text()
	case text:
		return strconv.Quote(v.str)
	}
	return "<unset>"
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case number:
		return json.Marshal(v.num)
	case text:
		return json.Marshal(v.str)
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = Value{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Str(s)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("cell value must be a number or a string: %w", err)
		}
		*v = Num(f)
	}
	return nil
}

// Data maps field names to values.
type Data map[string]Value

// Clone returns an independent copy. A nil map stays nil.
func (d Data) Clone() Data {
	return maps.Clone(d)
}

// Links maps a named slot to the ids it references. A nil slice in a
// partial store marks the slot for removal.
type Links map[string][]string

// Clone returns a deep copy, keeping nil slots nil.
func (l Links) Clone() Links {
	if l == nil {
		return nil
	}
	out := make(Links, len(l))
	for k, ids := range l {
		if ids == nil {
			out[k] = nil
			continue
		}
		out[k] = append([]string{}, ids...)
	}
	return out
}

// Flat returns every referenced id once, in slot-name order and then list
// order.
func (l Links) Flat() []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, k := range sortedKeys(l) {
		for _, id := range l[k] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// State is transient interaction state. It is never part of a Store.
type State struct {
	Select bool
	Hover  bool
	Show   bool
}
