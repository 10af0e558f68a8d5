package jsonscan

import (
	jsoniter "github.com/json-iterator/go"
)

// Kind classifies the JSON value held by a RawSpan.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

// RawSpan is the exact source bytes of one JSON value. Strings keep their
// surrounding quotes; objects and arrays run from the opening to the closing
// bracket inclusive. A RawSpan is never re-encoded.
type RawSpan struct {
	raw []byte
}

// NewRawSpan wraps b as a span. b must hold exactly one JSON value.
func NewRawSpan(b []byte) RawSpan {
	return RawSpan{raw: b}
}

// Bytes returns the span's bytes. Callers must not modify them.
func (s RawSpan) Bytes() []byte { return s.raw }

// Len returns the span length in bytes.
func (s RawSpan) Len() int { return len(s.raw) }

// String returns the span as text, e.g. `{"a":1}` or `"x"`.
func (s RawSpan) String() string { return string(s.raw) }

// Kind reports the JSON value kind from the span's first byte.
func (s RawSpan) Kind() Kind {
	if len(s.raw) == 0 {
		return KindInvalid
	}
	switch s.raw[0] {
	case '{':
		return KindObject
	case '[':
		return KindArray
	case '"':
		return KindString
	case 't', 'f':
		return KindBool
	case 'n':
		return KindNull
	default:
		return KindNumber
	}
}

// Decode unmarshals the span into v using encoding/json compatible rules.
func (s RawSpan) Decode(v any) error {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(s.raw, v)
}
