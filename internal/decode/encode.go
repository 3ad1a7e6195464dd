package decode

import (
	"fmt"
	"reflect"

	"github.com/kdlsoa/kdl/document"
	"github.com/kdlsoa/kdl/event"
)

// Encode builds a Document from v, a struct (or pointer to one), the
// reverse of Decode: each exported field becomes a node named after its
// kdl tag (or lowercased field name), with the field's value as the node's
// single argument, or as a children block for a nested struct field.
func Encode(v interface{}) (*document.Document, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("encode: value must be a struct or pointer to one")
	}

	b := document.NewDOMBuilder(nil)
	if err := encodeInto(b, rv); err != nil {
		return nil, err
	}
	return b.Document(), nil
}

func encodeInto(b *document.DOMBuilder, structVal reflect.Value) error {
	structType := structVal.Type()
	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		if !f.IsExported() {
			continue
		}
		name, ok := tagName(f)
		if !ok {
			continue
		}
		field := structVal.Field(i)

		if err := b.StartNode(name, "", event.Span{}); err != nil {
			return err
		}

		if field.Kind() == reflect.Struct {
			if err := encodeInto(b, field); err != nil {
				return err
			}
		} else {
			val, err := valueFor(field)
			if err != nil {
				return err
			}
			if err := b.Argument(val, "", event.Span{}); err != nil {
				return err
			}
		}

		if err := b.EndNode(field.Kind() == reflect.Struct, event.Span{}); err != nil {
			return err
		}
	}
	return nil
}

func valueFor(field reflect.Value) (event.Value, error) {
	switch field.Kind() {
	case reflect.String:
		return event.Value{Raw: []byte(field.String()), Kind: event.ValueString}, nil
	case reflect.Bool:
		if field.Bool() {
			return event.Value{Raw: []byte("#true"), Kind: event.ValueKeywordTrue}, nil
		}
		return event.Value{Raw: []byte("#false"), Kind: event.ValueKeywordFalse}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return event.Value{Raw: []byte(fmt.Sprintf("%d", field.Int())), Kind: event.ValueDecimalInt}, nil
	case reflect.Float32, reflect.Float64:
		return event.Value{Raw: []byte(fmt.Sprintf("%g", field.Float())), Kind: event.ValueDecimalFloat}, nil
	default:
		return event.Value{}, fmt.Errorf("encode: unsupported field kind %s", field.Kind())
	}
}
