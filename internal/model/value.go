package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindText Kind = iota + 1
	KindNumber
	KindObject
)

// Value is a field value addressed by name at runtime. Its String and Number
// conversions follow the loose coercions the filter and sort stages rely on.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Object returns an opaque structured value (such as a location).
func Object() Value { return Value{kind: KindObject} }

// Kind returns the value's dynamic type. The zero Value has kind 0.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v was never set.
func (v Value) IsZero() bool { return v.kind == 0 }

// IsText reports whether v holds text.
func (v Value) IsText() bool { return v.kind == KindText }

// String renders the value the way a loosely typed runtime would stringify it.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return formatNumber(v.num)
	case KindObject:
		return "[object Object]"
	}
	return "undefined"
}

// Number coerces the value to a float. Text that is not a number yields NaN,
// blank text yields 0, objects yield NaN.
func (v Value) Number() float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return parseNumber(v.text)
	}
	return math.NaN()
}

// MarshalJSON encodes text as a JSON string and numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(formatNumber(v.num))
		}
		return json.Marshal(v.num)
	case KindObject:
		return []byte("{}"), nil
	case KindText:
		return json.Marshal(v.text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts strings, numbers and booleans.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = Text(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Text(strconv.FormatBool(x))
	case nil:
		*v = Value{}
	default:
		return fmt.Errorf("%w: unsupported value %s", ErrInvalidValue, string(data))
	}
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for scalar YAML nodes.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = Text(x)
	case int:
		*v = Number(float64(x))
	case float64:
		*v = Number(x)
	case bool:
		*v = Text(strconv.FormatBool(x))
	case nil:
		*v = Value{}
	default:
		return fmt.Errorf("%w: unsupported value %v", ErrInvalidValue, raw)
	}
	return nil
}

// MarshalYAML encodes the value as a scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindText:
		return v.text, nil
	}
	return nil, nil
}

// formatNumber prints shortest round-trip digits, switching to exponent
// notation outside [1e-6, 1e21).
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		// Go pads the exponent to two digits: 1e-07 -> 1e-7
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// parseNumber converts text to a number: surrounding whitespace is ignored,
// blank text is 0 and anything else unparseable is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.ContainsAny(s, "_iInN") {
		// ParseFloat accepts "inf", "nan" and digit separators
		return math.NaN()
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}
