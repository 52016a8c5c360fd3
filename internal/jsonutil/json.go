// internal/jsonutil/json.go
package jsonutil

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrTrailingData: something other than whitespace follows the JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DecodeStrict reads exactly one JSON value into v. Unknown fields and
// trailing data are errors.
func DecodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}
