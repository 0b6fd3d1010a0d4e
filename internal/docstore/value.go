package docstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindBoolean
	KindTimestamp
	KindMap
)

// Value is one typed document field. It marshals to and from the
// Firestore REST representation ({"stringValue": ...}, {"integerValue":
// "..."} and so on), which is also the representation the SQLite backend
// persists. Code outside this package builds values through the
// constructors and reads them through the accessors.
type Value struct {
	kind      Kind
	str       string
	integer   int64
	boolean   bool
	timestamp time.Time
	nested    Fields
}

type Fields map[string]Value

func Null() Value {
	return Value{kind: KindNull}
}

func String(value string) Value {
	return Value{kind: KindString, str: value}
}

func Integer(value int64) Value {
	return Value{kind: KindInteger, integer: value}
}

func Boolean(value bool) Value {
	return Value{kind: KindBoolean, boolean: value}
}

func Timestamp(value time.Time) Value {
	return Value{kind: KindTimestamp, timestamp: value}
}

func Map(fields Fields) Value {
	if fields == nil {
		fields = Fields{}
	}
	return Value{kind: KindMap, nested: fields}
}

func (value Value) Kind() Kind {
	return value.kind
}

func (value Value) IsNull() bool {
	return value.kind == KindNull
}

func (value Value) StringValue() (string, bool) {
	return value.str, value.kind == KindString
}

func (value Value) IntegerValue() (int64, bool) {
	return value.integer, value.kind == KindInteger
}

func (value Value) BooleanValue() (bool, bool) {
	return value.boolean, value.kind == KindBoolean
}

func (value Value) TimestampValue() (time.Time, bool) {
	return value.timestamp, value.kind == KindTimestamp
}

func (value Value) MapValue() (Fields, bool) {
	if value.kind != KindMap {
		return nil, false
	}
	return value.nested, true
}

type wireValue struct {
	NullValue      *struct{}        `json:"nullValue,omitempty"`
	StringValue    *string          `json:"stringValue,omitempty"`
	IntegerValue   *json.RawMessage `json:"integerValue,omitempty"`
	BooleanValue   *bool            `json:"booleanValue,omitempty"`
	TimestampValue *string          `json:"timestampValue,omitempty"`
	MapValue       *wireMap         `json:"mapValue,omitempty"`
}

type wireMap struct {
	Fields Fields `json:"fields"`
}

func (value Value) MarshalJSON() ([]byte, error) {
	switch value.kind {
	case KindNull:
		return []byte(`{"nullValue":null}`), nil
	case KindString:
		return json.Marshal(wireValue{StringValue: &value.str})
	case KindInteger:
		// Firestore encodes int64 as a decimal string.
		encoded := json.RawMessage(strconv.Quote(strconv.FormatInt(value.integer, 10)))
		return json.Marshal(wireValue{IntegerValue: &encoded})
	case KindBoolean:
		return json.Marshal(wireValue{BooleanValue: &value.boolean})
	case KindTimestamp:
		formatted := value.timestamp.UTC().Format(time.RFC3339Nano)
		return json.Marshal(wireValue{TimestampValue: &formatted})
	case KindMap:
		return json.Marshal(wireValue{MapValue: &wireMap{Fields: value.nested}})
	default:
		return nil, fmt.Errorf("docstore: unsupported value kind %d", value.kind)
	}
}

func (value *Value) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if _, ok := raw["nullValue"]; ok {
		*value = Null()
		return nil
	}
	if encoded, ok := raw["stringValue"]; ok {
		var parsed string
		if err := json.Unmarshal(encoded, &parsed); err != nil {
			return err
		}
		*value = String(parsed)
		return nil
	}
	if encoded, ok := raw["integerValue"]; ok {
		parsed, err := parseWireInteger(encoded)
		if err != nil {
			return err
		}
		*value = Integer(parsed)
		return nil
	}
	if encoded, ok := raw["booleanValue"]; ok {
		var parsed bool
		if err := json.Unmarshal(encoded, &parsed); err != nil {
			return err
		}
		*value = Boolean(parsed)
		return nil
	}
	if encoded, ok := raw["timestampValue"]; ok {
		var formatted string
		if err := json.Unmarshal(encoded, &formatted); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, formatted)
		if err != nil {
			return fmt.Errorf("docstore: invalid timestampValue %q: %w", formatted, err)
		}
		*value = Timestamp(parsed)
		return nil
	}
	if encoded, ok := raw["mapValue"]; ok {
		var parsed wireMap
		if err := json.Unmarshal(encoded, &parsed); err != nil {
			return err
		}
		*value = Map(parsed.Fields)
		return nil
	}

	return fmt.Errorf("docstore: unrecognized value payload %s", string(data))
}

// parseWireInteger accepts both the canonical string form ("42") and a
// bare JSON number, which some emitters produce.
func parseWireInteger(encoded json.RawMessage) (int64, error) {
	var asString string
	if err := json.Unmarshal(encoded, &asString); err == nil {
		return strconv.ParseInt(asString, 10, 64)
	}
	var asNumber int64
	if err := json.Unmarshal(encoded, &asNumber); err != nil {
		return 0, fmt.Errorf("docstore: invalid integerValue %s", string(encoded))
	}
	return asNumber, nil
}
