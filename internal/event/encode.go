package event

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SerializationError reports a value that cannot be written as JSON.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("serialize event: %v", e.Err)
	}
	return fmt.Sprintf("serialize event at %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Encode writes v as a single line of JSON without a trailing newline.
// Elements are separated by ", " and keys by ": ". Strings are emitted as
// UTF-8 without HTML escaping, so the output never contains a raw newline.
func Encode(v Value) ([]byte, error) {
	e := &encoder{}
	e.str = json.NewEncoder(&e.scratch)
	e.str.SetEscapeHTML(false)
	if err := e.value(v, "$"); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf     bytes.Buffer
	scratch bytes.Buffer
	str     *json.Encoder
}

func (e *encoder) value(v Value, path string) error {
	switch v.kind {
	case Null:
		e.buf.WriteString("null")
	case Bool:
		if v.boolean {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case Number:
		if !validNumber(v.text) {
			return &SerializationError{Path: path, Err: fmt.Errorf("invalid number literal %q", v.text)}
		}
		e.buf.WriteString(v.text)
	case String:
		return e.string(v.text, path)
	case Array:
		e.buf.WriteByte('[')
		for i, el := range v.elems {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			if err := e.value(el, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case Object:
		e.buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			if err := e.string(m.Key, path); err != nil {
				return err
			}
			e.buf.WriteString(": ")
			if err := e.value(m.Value, path+"."+m.Key); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
	default:
		return &SerializationError{Path: path, Err: fmt.Errorf("unknown value kind %d", v.kind)}
	}
	return nil
}

func (e *encoder) string(s, path string) error {
	e.scratch.Reset()
	if err := e.str.Encode(s); err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	e.buf.Write(bytes.TrimSuffix(e.scratch.Bytes(), []byte("\n")))
	return nil
}

// validNumber reports whether s is a JSON number literal.
func validNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}
