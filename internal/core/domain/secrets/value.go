package secrets

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMapping
	KindSequence
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is a single document value. Scalars keep their canonical text;
// mappings keep their keys in document order.
type Value struct {
	kind  Kind
	text  string
	pairs []Pair
	items []Value
}

// Pair is one key of a mapping value
type Pair struct {
	Key   string
	Value Value
}

// Null returns the null value
func Null() Value {
	return Value{kind: KindNull, text: "null"}
}

// String returns a string value
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a number value from its canonical decimal text
func Number(text string) Value {
	return Value{kind: KindNumber, text: text}
}

// Int returns a number value for an integer
func Int(i int64) Value {
	return Number(strconv.FormatInt(i, 10))
}

// Uint returns a number value for an unsigned integer
func Uint(u uint64) Value {
	return Number(strconv.FormatUint(u, 10))
}

// Float returns a number value for a finite float
func Float(f float64) Value {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Bool returns a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b)}
}

// Mapping returns a mapping value. A key given more than once keeps the
// position of its first occurrence and the value of its last.
func Mapping(pairs ...Pair) Value {
	out := make([]Pair, 0, len(pairs))
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if i, ok := index[p.Key]; ok {
			out[i].Value = p.Value
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return Value{kind: KindMapping, pairs: out}
}

// Sequence returns a sequence value
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value(nil), items...)}
}

// Kind returns the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// Pairs returns a copy of the mapping pairs in document order
func (v Value) Pairs() []Pair {
	return append([]Pair(nil), v.pairs...)
}

// Lookup returns the value stored under key in a mapping
func (v Value) Lookup(key string) (Value, bool) {
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// String returns the text exposed to a child process: scalars as their
// canonical text, mappings and sequences as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindMapping, KindSequence:
		var buf bytes.Buffer
		v.writeJSON(&buf)
		return buf.String()
	default:
		return v.text
	}
}

// MarshalJSON encodes v as compact JSON with mapping keys in document order
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool, KindNumber:
		buf.WriteString(v.text)
	case KindString:
		writeJSONString(buf, v.text)
	case KindMapping:
		buf.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, p.Key)
			buf.WriteByte(':')
			p.Value.writeJSON(buf)
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeJSON(buf)
		}
		buf.WriteByte(']')
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
}
