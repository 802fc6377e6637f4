package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type idKind uint8

const (
	idNull idKind = iota
	idNumber
	idString
)

/*
ID is the request/response correlation value. It is a tri-state union over a
64-bit signed number, a string, and null; the zero value is null. IDs are
comparable, so equality is structural, and they round-trip exactly through
the wire encoding.
*/
type ID struct {
	kind idKind
	num  int64
	str  string
}

/*
NumberID builds a numeric ID.
*/
func NumberID(n int64) ID {
	return ID{kind: idNumber, num: n}
}

/*
StringID builds a textual ID.
*/
func StringID(s string) ID {
	return ID{kind: idString, str: s}
}

/*
NullID builds the absent ID. Responses to requests that failed before their
id could be read carry this value.
*/
func NullID() ID {
	return ID{}
}

func (id ID) IsNull() bool {
	return id.kind == idNull
}

/*
Number returns the numeric value and whether the ID holds one.
*/
func (id ID) Number() (int64, bool) {
	return id.num, id.kind == idNumber
}

/*
Text returns the string value and whether the ID holds one.
*/
func (id ID) Text() (string, bool) {
	return id.str, id.kind == idString
}

func (id ID) String() string {
	switch id.kind {
	case idNumber:
		return fmt.Sprintf("%d", id.num)
	case idString:
		return id.str
	default:
		return "null"
	}
}

/*
MarshalJSON encodes the ID untagged: a bare number, a bare string, or null.
*/
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idNumber:
		return json.Marshal(id.num)
	case idString:
		return json.Marshal(id.str)
	default:
		return []byte("null"), nil
	}
}

/*
UnmarshalJSON tries each alternative: number, then string, then null.
Anything else (objects, arrays, booleans, fractional numbers) fails. The
null token is matched up front because encoding/json treats null as a no-op
on the numeric probe, which would silently turn a null id into the number 0.
*/
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*id = NullID()
		return nil
	}

	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*id = NumberID(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*id = StringID(str)
		return nil
	}

	return fmt.Errorf("id must be a number, a string or null, got %s", data)
}
