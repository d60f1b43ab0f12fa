// Package shape converts query results into ordered, serialization-ready
// documents: plain scalars, ordered sequences and ordered key/value
// mappings with every entity reference reduced to its id string plus
// minimal display fields. The documents are the sole input contract of
// the compact-encoding collaborator.
package shape

import (
	"bytes"
	"encoding/json"
)

// Field is one ordered key/value pair of a Doc.
type Field struct {
	Key   string
	Value interface{}
}

// Doc is an ordered mapping. Field order is the serialization order;
// unlike a Go map it survives marshalling intact.
type Doc struct {
	Fields []Field
}

// NewDoc creates an empty document.
func NewDoc() *Doc {
	return &Doc{}
}

// Set appends a field and returns the document for chaining. Values may
// be scalars, []interface{} or nested *Doc.
func (d *Doc) Set(key string, value interface{}) *Doc {
	d.Fields = append(d.Fields, Field{Key: key, Value: value})
	return d
}

// Get returns the value for key, or nil.
func (d *Doc) Get(key string) interface{} {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// MarshalJSON serializes the document as a JSON object preserving field
// order. This is also the graceful-degradation output when no compact
// encoder is wired.
func (d *Doc) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
