// Package snapjson converts option snapshots to and from JSON objects.
//
// Encoding keeps registry order, so the object reads like the synthesized
// code. Decoding accepts partial objects; missing fields keep their
// defaults. A gjson path selects a nested object, which lets a snapshot be
// read out of a larger document such as a package.json section.
package snapjson

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/toasty/internal/option"
)

// Errors returned by encoding and decoding.
var (
	// ErrInvalidJSON is returned for input that is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotObject is returned when the selected value is not an object.
	ErrNotObject = errors.New("snapshot must be a JSON object")

	// ErrNonFinite is returned when encoding NaN or an infinity, which JSON
	// cannot represent.
	ErrNonFinite = errors.New("non-finite number")
)

// Encode renders s as a compact JSON object in registry order.
func Encode(s option.Snapshot) ([]byte, error) {
	out := []byte("{}")
	for _, e := range s.Entries() {
		var err error
		key := escapeKey(e.Name)
		switch {
		case e.Value.IsNumber():
			n := e.Value.Num()
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, fmt.Errorf("%w: %s is %s", ErrNonFinite, e.Name, option.FormatNumber(n))
			}
			out, err = sjson.SetBytes(out, key, n)
		case e.Value.IsBool():
			out, err = sjson.SetBytes(out, key, e.Value.Truth())
		default:
			out, err = sjson.SetBytes(out, key, e.Value.Str())
		}
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.Name, err)
		}
	}
	return out, nil
}

// EncodeIndent renders s as indented JSON ending in a newline.
func EncodeIndent(s option.Snapshot) ([]byte, error) {
	out, err := Encode(s)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(out, &pretty.Options{Width: 80, Indent: "  "}), nil
}

// Values reads the object at path (the whole document when path is empty)
// and returns one value per key. Keys must name registered fields, and each
// value must have a shape its field accepts.
func Values(reg *option.Registry, data []byte, path string) (map[string]option.Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	obj := gjson.ParseBytes(data)
	if path != "" {
		obj = obj.Get(path)
		if !obj.Exists() {
			return nil, fmt.Errorf("%w: nothing at %q", ErrNotObject, path)
		}
	}
	if !obj.IsObject() {
		return nil, ErrNotObject
	}

	values := make(map[string]option.Value)
	var firstErr error
	obj.ForEach(func(key, val gjson.Result) bool {
		field, ok := reg.Field(key.String())
		if !ok {
			firstErr = fmt.Errorf("%w: %s", option.ErrUnknownField, key.String())
			return false
		}
		v, err := convert(field, val)
		if err == nil {
			err = field.CheckShape(v)
		}
		if err != nil {
			firstErr = err
			return false
		}
		values[field.Name] = v
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return values, nil
}

// Decode reads a snapshot from data. Fields absent from the object take
// their registry defaults.
func Decode(reg *option.Registry, data []byte, path string) (option.Snapshot, error) {
	values, err := Values(reg, data, path)
	if err != nil {
		return option.Snapshot{}, err
	}
	s := reg.Defaults()
	for _, name := range s.Names() {
		if v, ok := values[name]; ok {
			s = s.With(name, v)
		}
	}
	return s, nil
}

func convert(field *option.Field, val gjson.Result) (option.Value, error) {
	switch val.Type {
	case gjson.String:
		return option.Text(val.Str), nil
	case gjson.Number:
		return option.Number(val.Num), nil
	case gjson.True, gjson.False:
		return option.Bool(val.Bool()), nil
	default:
		return option.Value{}, &option.DomainError{
			Field: field.Name,
			Value: option.Text(val.Raw),
			Err:   option.ErrKindMismatch,
		}
	}
}

// escapeKey protects characters that sjson treats as path syntax.
func escapeKey(name string) string {
	return strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`).Replace(name)
}
