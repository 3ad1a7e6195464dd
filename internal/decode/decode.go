// Package decode implements a reflect-based binding between a
// document.Document and plain Go structs, in the spirit of encoding/json:
// one struct tag ("kdl"), one binding per node name, and no custom
// (un)marshaler interfaces, embedding chains, or capture-into-slice
// attributes. See DESIGN.md for the rationale behind keeping this binding
// layer intentionally small.
package decode

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kdlsoa/kdl/document"
)

// FieldError reports a semantic error binding a single node or value to a
// Go field.
type FieldError struct {
	Kind  string // "TypeMismatch", "MissingRequiredField", "UnknownField", "IntegerOverflow"
	Field string
	Node  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q (node %q)", e.Kind, e.Field, e.Node)
}

// tagName returns the node name a struct field binds to, and whether it was
// explicitly marked to be skipped ("-").
func tagName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("kdl")
	if tag == "-" {
		return "", false
	}
	name := f.Name
	if tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			name = parts[0]
		}
	}
	return strings.ToLower(name), true
}

// Decode populates target, which must be a non-nil pointer to a struct,
// from doc's top-level nodes: each node is matched case-insensitively
// against a field's kdl tag or name, and the node's first argument (or,
// for a struct-typed field, the node's children) is bound to that field.
func Decode(doc *document.Document, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode: target must be a non-nil pointer to a struct")
	}
	return decodeInto(rv.Elem(), doc.Roots(), doc)
}

func decodeInto(structVal reflect.Value, nodes []document.NodeHandle, doc *document.Document) error {
	structType := structVal.Type()
	byName := make(map[string]int, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		if name, ok := tagName(structType.Field(i)); ok {
			byName[name] = i
		}
	}

	for _, h := range nodes {
		n := doc.Node(h)
		fi, ok := byName[strings.ToLower(n.Name())]
		if !ok {
			continue // unknown nodes are ignored rather than treated as an error
		}
		field := structVal.Field(fi)

		if field.Kind() == reflect.Struct && n.ChildCount() > 0 {
			if err := decodeInto(field, n.Children(), doc); err != nil {
				return err
			}
			continue
		}

		if n.ArgumentCount() == 0 {
			continue
		}
		if err := bindValue(field, n.Argument(0), n.Name()); err != nil {
			return err
		}
	}
	return nil
}

func bindValue(field reflect.Value, v document.ValueView, nodeName string) error {
	switch field.Kind() {
	case reflect.String:
		if v.Kind() != document.KindString {
			return &FieldError{Kind: "TypeMismatch", Field: field.Type().Name(), Node: nodeName}
		}
		field.SetString(v.String())
	case reflect.Bool:
		if v.Kind() != document.KindBool {
			return &FieldError{Kind: "TypeMismatch", Field: field.Type().Name(), Node: nodeName}
		}
		field.SetBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Kind() != document.KindInteger {
			return &FieldError{Kind: "TypeMismatch", Field: field.Type().Name(), Node: nodeName}
		}
		if field.OverflowInt(v.Int()) {
			return &FieldError{Kind: "IntegerOverflow", Field: field.Type().Name(), Node: nodeName}
		}
		field.SetInt(v.Int())
	case reflect.Float32, reflect.Float64:
		switch v.Kind() {
		case document.KindFloat:
			field.SetFloat(v.Float())
		case document.KindInteger:
			field.SetFloat(float64(v.Int()))
		default:
			return &FieldError{Kind: "TypeMismatch", Field: field.Type().Name(), Node: nodeName}
		}
	default:
		return &FieldError{Kind: "TypeMismatch", Field: field.Type().Name(), Node: nodeName}
	}
	return nil
}
