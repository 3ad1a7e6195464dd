package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatConfig struct {
	Name    string
	Port    int
	Debug   bool
	Timeout float64
	Skipped string `kdl:"-"`
}

func TestEncodeProducesOneNodePerField(t *testing.T) {
	cfg := flatConfig{Name: "api", Port: 8080, Debug: true, Timeout: 1.5, Skipped: "nope"}

	doc, err := Encode(&cfg)
	require.NoError(t, err)
	require.Equal(t, 4, len(doc.Roots()))

	names := make([]string, 0, len(doc.Roots()))
	for _, h := range doc.Roots() {
		names = append(names, doc.Node(h).Name())
	}
	assert.Equal(t, []string{"name", "port", "debug", "timeout"}, names)
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	cfg := flatConfig{Name: "api", Port: 8080, Debug: true, Timeout: 1.5}

	doc, err := Encode(&cfg)
	require.NoError(t, err)

	var out flatConfig
	require.NoError(t, Decode(doc, &out))

	assert.Equal(t, cfg.Name, out.Name)
	assert.Equal(t, cfg.Port, out.Port)
	assert.Equal(t, cfg.Debug, out.Debug)
	assert.Equal(t, cfg.Timeout, out.Timeout)
}

func TestEncodeAcceptsStructValueNotJustPointer(t *testing.T) {
	cfg := flatConfig{Name: "by-value"}
	doc, err := Encode(cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Roots())
}

func TestEncodeNestedStructBecomesChildren(t *testing.T) {
	type address struct {
		City string
	}
	type withAddress struct {
		Address address
	}

	doc, err := Encode(withAddress{Address: address{City: "Springfield"}})
	require.NoError(t, err)

	require.Len(t, doc.Roots(), 1)
	n := doc.Node(doc.Roots()[0])
	assert.Equal(t, "address", n.Name())
	require.Equal(t, 1, n.ChildCount())
	assert.Equal(t, "city", n.Child(0).Name())
	assert.Equal(t, "Springfield", n.Child(0).Argument(0).String())
}

func TestEncodeRejectsNonStruct(t *testing.T) {
	_, err := Encode(42)
	require.Error(t, err)
}

func TestEncodeUnsupportedFieldKindErrors(t *testing.T) {
	type withSlice struct {
		Values []string
	}
	_, err := Encode(withSlice{Values: []string{"a"}})
	require.Error(t, err)
}
