package metadata

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	ValueKindInvalid ValueKind = iota
	ValueKindString
	ValueKindInteger
	ValueKindFloat
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindString:
		return "string"
	case ValueKindInteger:
		return "integer"
	case ValueKindFloat:
		return "float"
	}
	return "invalid"
}

// AttributeValue is the value of a trait: exactly one of a string, an
// integer or a float. Use StringValue, IntegerValue or FloatValue to
// create one; the zero value is invalid.
type AttributeValue struct {
	kind ValueKind
	str  string
	num  int64
	flt  float64
}

func StringValue(s string) AttributeValue {
	return AttributeValue{kind: ValueKindString, str: s}
}

func IntegerValue(i int64) AttributeValue {
	return AttributeValue{kind: ValueKindInteger, num: i}
}

func FloatValue(f float64) AttributeValue {
	return AttributeValue{kind: ValueKindFloat, flt: f}
}

func (v AttributeValue) Kind() ValueKind {
	return v.kind
}

func (v AttributeValue) AsString() (string, bool) {
	return v.str, v.kind == ValueKindString
}

func (v AttributeValue) AsInteger() (int64, bool) {
	return v.num, v.kind == ValueKindInteger
}

func (v AttributeValue) AsFloat() (float64, bool) {
	return v.flt, v.kind == ValueKindFloat
}

func (v AttributeValue) IsNumeric() bool {
	return v.kind == ValueKindInteger || v.kind == ValueKindFloat
}

func (v AttributeValue) String() string {
	switch v.kind {
	case ValueKindString:
		return v.str
	case ValueKindInteger:
		return strconv.FormatInt(v.num, 10)
	case ValueKindFloat:
		return formatFloat(v.flt)
	}
	return "<invalid>"
}

func (v AttributeValue) validate(path string) error {
	switch v.kind {
	case ValueKindString, ValueKindInteger:
		return nil
	case ValueKindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return &SchemaError{Kind: TypeMismatch, Field: path, Err: fmt.Errorf("non-finite float %v", v.flt)}
		}
		return nil
	}
	return &SchemaError{Kind: TypeMismatch, Field: path, Err: fmt.Errorf("value has no kind")}
}

func decodeValue(path string, raw interface{}) (AttributeValue, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case json.Number:
		return decodeNumber(path, v)
	}
	return AttributeValue{}, typeMismatch(path, "string or number", raw)
}

func decodeNumber(path string, n json.Number) (AttributeValue, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntegerValue(i), nil
		}
		// integer literals beyond int64 fall through to float
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return AttributeValue{}, &SchemaError{Kind: TypeMismatch, Field: path, Err: err}
	}
	return FloatValue(f), nil
}

func (v AttributeValue) encode(w *objectWriter, key string) {
	switch v.kind {
	case ValueKindString:
		w.stringField(key, v.str)
	case ValueKindInteger:
		w.rawField(key, strconv.FormatInt(v.num, 10))
	case ValueKindFloat:
		w.rawField(key, formatFloat(v.flt))
	}
}

// formatFloat always leaves a fraction or an exponent in the output so the
// number is read back as a float.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'f' && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
