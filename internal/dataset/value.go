package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the scalar type carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindBool
)

// String returns the lowercase type name used in summaries.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "numeric"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	default:
		return "null"
	}
}

// Value is a tagged scalar cell. Rows arrive as loosely typed JSON; tagging
// the type once at construction keeps coercion out of every consuming stage.
type Value struct {
	kind    Kind
	num     float64
	text    string
	boolean bool
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Number returns a numeric Value.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// Text returns a text Value.
func Text(v string) Value { return Value{kind: KindText, text: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, boolean: v} }

// FromAny converts a decoded JSON scalar into a Value. Unsupported types
// (nested objects, arrays) are reported to the caller.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case float64:
		return Number(v), nil
	case int:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Text(v.String()), nil
		}
		return Number(f), nil
	case bool:
		return Bool(v), nil
	case string:
		return Text(v), nil
	default:
		return Value{}, fmt.Errorf("unsupported cell type %T", raw)
	}
}

// Kind returns the tagged kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell carries no usable data. Empty and
// whitespace-only strings count as missing, matching how exported
// spreadsheets encode absent cells.
func (v Value) IsMissing() bool {
	if v.kind == KindNull {
		return true
	}
	return v.kind == KindText && strings.TrimSpace(v.text) == ""
}

// AsNumber returns the numeric interpretation of the cell. Text cells parse
// leniently ("42", " 3.14 "), booleans and nulls do not count as numeric.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Canonical returns a stable string form used for row-equality hashing.
func (v Value) Canonical() string {
	switch v.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return "t:" + v.text
	case KindBool:
		return "b:" + strconv.FormatBool(v.boolean)
	default:
		return "z"
	}
}

// Interface returns the plain Go scalar, for JSON encoding of previews.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.text
	case KindBool:
		return v.boolean
	default:
		return nil
	}
}
