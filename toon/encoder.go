// Package toon renders shaped documents into a compact, indentation
// based textual form intended for inclusion in language-model prompts.
// It covers the subset of the TOON notation the query payloads need:
// key/value lines, inline scalar arrays, and tabular arrays for lists
// of uniform flat documents.
package toon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GusEllerm/ro-crate-provenance-tools/core/shape"
)

// Options controls the rendering.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// Delimiter separates inline array values and table row cells.
	Delimiter string
	// LengthMarker prefixes array lengths with '#'.
	LengthMarker bool
}

// DefaultOptions returns the defaults used for prompt payloads:
// 2-space indent, comma delimiter, no length marker.
func DefaultOptions() *Options {
	return &Options{
		Indent:    2,
		Delimiter: ",",
	}
}

// Encoder renders shaped documents. The zero value is not usable;
// construct with NewEncoder.
type Encoder struct {
	opts *Options
}

// NewEncoder creates an encoder. A nil opts falls back to
// DefaultOptions.
func NewEncoder(opts *Options) *Encoder {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Encoder{opts: opts}
}

// Encode renders a shaped document.
func (e *Encoder) Encode(doc *shape.Doc) string {
	var b strings.Builder
	for _, f := range doc.Fields {
		e.writeField(&b, 0, f.Key, f.Value)
	}
	return b.String()
}

// Encode renders value with the given options; nil opts means defaults.
// Top-level values may be a *shape.Doc, a list or a scalar.
func Encode(value interface{}, opts *Options) string {
	enc := NewEncoder(opts)
	if doc, ok := value.(*shape.Doc); ok {
		return enc.Encode(doc)
	}
	var b strings.Builder
	enc.writeField(&b, 0, "value", value)
	return b.String()
}

func (e *Encoder) writeField(b *strings.Builder, depth int, key string, value interface{}) {
	switch v := value.(type) {
	case *shape.Doc:
		if v == nil {
			e.line(b, depth, key+": null")
			return
		}
		e.line(b, depth, key+":")
		for _, f := range v.Fields {
			e.writeField(b, depth+1, f.Key, f.Value)
		}
	case []interface{}:
		e.writeList(b, depth, key, v)
	default:
		e.line(b, depth, key+": "+e.scalar(value))
	}
}

func (e *Encoder) writeList(b *strings.Builder, depth int, key string, items []interface{}) {
	marker := e.length(len(items))

	if len(items) == 0 {
		e.line(b, depth, key+marker+":")
		return
	}

	if scalars, ok := scalarCells(items, e.scalar); ok {
		e.line(b, depth, key+marker+": "+strings.Join(scalars, e.opts.Delimiter))
		return
	}

	if header, rows, ok := e.tabular(items); ok {
		e.line(b, depth, key+marker+"{"+strings.Join(header, e.opts.Delimiter)+"}:")
		for _, row := range rows {
			e.line(b, depth+1, strings.Join(row, e.opts.Delimiter))
		}
		return
	}

	e.line(b, depth, key+marker+":")
	for i, item := range items {
		e.writeField(b, depth+1, strconv.Itoa(i), item)
	}
}

// tabular reports whether every item is a flat document with identical
// keys and scalar values, and if so returns the header and rows.
func (e *Encoder) tabular(items []interface{}) ([]string, [][]string, bool) {
	var header []string
	rows := make([][]string, 0, len(items))

	for _, item := range items {
		doc, ok := item.(*shape.Doc)
		if !ok || doc == nil {
			return nil, nil, false
		}
		row := make([]string, 0, len(doc.Fields))
		keys := make([]string, 0, len(doc.Fields))
		for _, f := range doc.Fields {
			if !isScalar(f.Value) {
				return nil, nil, false
			}
			keys = append(keys, f.Key)
			row = append(row, e.scalar(f.Value))
		}
		if header == nil {
			header = keys
		} else if !equalKeys(header, keys) {
			return nil, nil, false
		}
		rows = append(rows, row)
	}

	return header, rows, true
}

func (e *Encoder) length(n int) string {
	if e.opts.LengthMarker {
		return "[#" + strconv.Itoa(n) + "]"
	}
	return "[" + strconv.Itoa(n) + "]"
}

func (e *Encoder) line(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat(" ", depth*e.opts.Indent))
	b.WriteString(text)
	b.WriteByte('\n')
}

// scalar formats a single value, quoting strings that would collide
// with the notation.
func (e *Encoder) scalar(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		if v == "" || strings.ContainsAny(v, e.opts.Delimiter+":\n\"") ||
			v != strings.TrimSpace(v) {
			return strconv.Quote(v)
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isScalar(value interface{}) bool {
	switch value.(type) {
	case nil, string, bool, int, int64, float64:
		return true
	}
	return false
}

func scalarCells(items []interface{}, format func(interface{}) string) ([]string, bool) {
	cells := make([]string, 0, len(items))
	for _, item := range items {
		if !isScalar(item) {
			return nil, false
		}
		cells = append(cells, format(item))
	}
	return cells, true
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
