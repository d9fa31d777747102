/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tells which scalar a Value holds.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "S"
	case KindNumber:
		return "N"
	default:
		return "?"
	}
}

// Value is a typed scalar attribute value. Numbers keep their decimal text so that
// values with more precision than float64 survive a round trip.
type Value struct {
	kind Kind
	text string
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a number Value from its decimal text. The text is not validated here;
// use ParseNumber for untrusted input.
func Number(n string) Value {
	return Value{kind: KindNumber, text: n}
}

// ParseNumber validates n as a decimal number.
func ParseNumber(n string) (Value, error) {
	if _, ok := new(big.Float).SetString(n); !ok {
		return Value{}, fmt.Errorf("invalid number %q", n)
	}
	return Number(n), nil
}

// Int returns a number Value.
func Int(i int64) Value {
	return Number(strconv.FormatInt(i, 10))
}

// Float returns a number Value.
func Float(f float64) Value {
	return Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v was never set.
func (v Value) IsZero() bool { return v.kind == 0 }

// Text returns the raw text: the string itself, or the decimal form of a number.
func (v Value) Text() string { return v.text }

func (v Value) String() string { return v.text }

// Int64 converts a number Value to int64.
func (v Value) Int64() (int64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("value %q is %s, not a number", v.text, v.kind)
	}
	return strconv.ParseInt(v.text, 10, 64)
}

// Float64 converts a number Value to float64.
func (v Value) Float64() (float64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("value %q is %s, not a number", v.text, v.kind)
	}
	return strconv.ParseFloat(v.text, 64)
}

// Equal reports whether two values have the same kind and compare equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	return v.Compare(o) == 0
}

// Compare orders numbers numerically and strings lexically. Strings sort after numbers.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return 1
		}
		return -1
	}
	if v.kind == KindNumber {
		a, aok := new(big.Float).SetString(v.text)
		b, bok := new(big.Float).SetString(o.text)
		if aok && bok {
			return a.Cmp(b)
		}
	}
	return strings.Compare(v.text, o.text)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return []byte(v.text), nil
	case KindString:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a string or a number: %w", err)
	}
	*v = Number(n.String())
	return nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: v.text}
	switch v.kind {
	case KindNumber:
		node.Tag = "!!int"
		if strings.ContainsAny(v.text, ".eE") {
			node.Tag = "!!float"
		}
	default:
		node.Tag = "!!str"
	}
	return node, nil
}
