package exprjson

import (
	"bytes"
	"encoding/json"
)

// Value is one canonical JSON-isomorphic value: nil, bool, int, string,
// []Value, or *Object. A fresh tree is built per conversion; nothing is
// shared with the input expression tree.
type Value interface{}

// Object is a JSON object whose keys keep insertion order, so that every
// node of a given kind serializes with the same key sequence.
type Object struct {
	keys   []string
	fields map[string]Value
}

func NewObject() *Object {
	return &Object{fields: map[string]Value{}}
}

func (o *Object) Set(key string, value Value) *Object {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = value
	return o
}

func (o *Object) Get(key string) Value {
	return o.fields[key]
}

func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func Encode(v Value) ([]byte, error) {
	return json.Marshal(v)
}

func EncodeIndent(v Value) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
