package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ExcerptLimit bounds how much raw input is included in a parse diagnostic.
const ExcerptLimit = 500

const maxDepth = 10000

// ParseError reports input that is not exactly one JSON document.
type ParseError struct {
	Msg    string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("parse event: %s (offset %d)", e.Msg, e.Offset)
	}
	return "parse event: " + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read consumes r to completion and parses the result as one JSON document.
// The raw bytes are returned even when parsing fails so the caller can quote
// them in a diagnostic.
func Read(r io.Reader) (Value, []byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, data, &ParseError{Msg: "read input: " + err.Error(), Err: err}
	}
	v, err := Parse(data)
	return v, data, err
}

// Parse parses data as exactly one JSON document. Empty input and trailing
// data after the document are errors.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, &ParseError{Msg: "empty input"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return Value{}, toParseError(err, dec, len(data))
	}

	rest := bytes.TrimLeft(data[dec.InputOffset():], " \t\r\n")
	if len(rest) > 0 {
		return Value{}, &ParseError{
			Msg:    "extra data after JSON document",
			Offset: int64(len(data) - len(rest)),
		}
	}
	return v, nil
}

// Excerpt returns at most the first ExcerptLimit bytes of s. The result is
// not quoted; the diagnostic handler quotes it when it is written.
func Excerpt(s string) string {
	if len(s) > ExcerptLimit {
		return s[:ExcerptLimit]
	}
	return s
}

var errTooDeep = errors.New("exceeded maximum nesting depth")

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		if depth >= maxDepth {
			return Value{}, errTooDeep
		}
		switch t {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeArray(dec, depth+1)
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	var members []Member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, not string", tok)
		}
		val, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: key, Value: val})
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ObjectValue(members...), nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	elems := []Value{}
	for dec.More() {
		val, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ArrayValue(elems...), nil
}

func toParseError(err error, dec *json.Decoder, size int) *ParseError {
	var syn *json.SyntaxError
	switch {
	case errors.As(err, &syn):
		return &ParseError{Msg: syn.Error(), Offset: syn.Offset, Err: err}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &ParseError{Msg: "unexpected end of JSON input", Offset: int64(size), Err: err}
	default:
		return &ParseError{Msg: err.Error(), Offset: dec.InputOffset(), Err: err}
	}
}
