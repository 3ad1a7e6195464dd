package kdl

import "github.com/kdlsoa/kdl/internal/decode"

// Unmarshal parses data as KDL and binds its top-level nodes onto v, a
// pointer to a struct, matching each node's name against a field's "kdl"
// struct tag (or its lowercased field name).
func Unmarshal(data []byte, v interface{}) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	return decode.Decode(doc, v)
}

// Marshal renders v, a struct or pointer to one, as canonical KDL 2.0.0
// source text, the inverse of Unmarshal.
func Marshal(v interface{}) ([]byte, error) {
	doc, err := decode.Encode(v)
	if err != nil {
		return nil, err
	}
	return Encode(doc), nil
}
