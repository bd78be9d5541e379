package xheader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MarshalJSON renders v as the minimal UTF-8 JSON encoding described by the
// extra-headers invariant: no trailing or internal whitespace, objects in
// insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	writeJSON(&buf, v)

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(formatNumber(v))
	case KindString:
		writeJSONString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, e)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			val, _ := v.obj.get(k)
			writeJSON(buf, val)
		}
		buf.WriteByte('}')
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

// ParseJSON decodes a JSON document into a Value tree, preserving object key
// insertion order and the integer/floating-point distinction of numbers.
// An empty input decodes to an empty object, matching an absent extra
// headers section.
func ParseJSON(data []byte) (Value, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Object(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("xheader: invalid JSON: %w", err)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberValue(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Value{}, fmt.Errorf("unexpected token %T", tok)
	}
}

func numberValue(n json.Number) Value {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return Int(i)
	}

	f, _ := n.Float64()

	return Number(f)
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		v, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF { // consume ']'
		return Value{}, err
	}

	return Array(items...), nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Object()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.SetKey(key, v)
	}
	if _, err := dec.Token(); err != nil && err != io.EOF { // consume '}'
		return Value{}, err
	}

	return obj, nil
}
