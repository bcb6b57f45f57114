package entity

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
)

// Fields is a decoded partial update keyed by the JSON field name.
type Fields map[string]any

// Has reports whether name was supplied.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Without returns a copy of f minus the named keys.
func (f Fields) Without(names ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// Names returns the supplied field names in a stable order so the first
// reported violation does not depend on map iteration.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Fields returns f itself, so a decoded body can stand wherever a typed
// create input is accepted.
func (f Fields) Fields() Fields { return f }

// Text reads name as a string. Absent and null fields read as "".
func (f Fields) Text(name string) (string, error) {
	v, ok := f[name]
	if !ok || v == nil {
		return "", nil
	}
	return stringValue(name, v)
}

// Integer reads name as a whole number. Absent and null fields read as 0.
func (f Fields) Integer(name string) (int, error) {
	v, ok := f[name]
	if !ok || v == nil {
		return 0, nil
	}
	return integerValue(name, v)
}

// Number reads name as a float. Absent and null fields read as 0.
func (f Fields) Number(name string) (float64, error) {
	v, ok := f[name]
	if !ok || v == nil {
		return 0, nil
	}
	return numberValue(name, v)
}

type setter[T any] func(*T, any) error

// apply routes every supplied field through its setter on a copy of target
// and only writes the copy back once all of them succeed.
func apply[T any](target *T, fields Fields, setters map[string]setter[T]) error {
	next := *target
	for _, name := range fields.Names() {
		set, ok := setters[name]
		if !ok {
			return invalid(name, "unknown field")
		}
		if err := set(&next, fields[name]); err != nil {
			return err
		}
	}
	*target = next
	return nil
}

func stringValue(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", wrongType(field, "a string")
	}
	return s, nil
}

func numberValue(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, wrongType(field, "a number")
		}
		return f, nil
	default:
		return 0, wrongType(field, "a number")
	}
}

func integerValue(field string, v any) (int, error) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		if err != nil {
			return 0, wrongType(field, "an integer")
		}
		return int(i), nil
	}
	f, err := numberValue(field, v)
	if err != nil {
		return 0, wrongType(field, "an integer")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, wrongType(field, "an integer")
	}
	return int(f), nil
}

// DecodeError folds a JSON decoding failure into the validation taxonomy.
// Type mismatches become KindType errors on the offending field.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		return wrongType(field, "of type "+typeErr.Type.String())
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return invalid("body", "malformed JSON")
	}
	return invalid("body", err.Error())
}
