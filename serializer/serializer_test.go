package serializer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickforge/engine/enginerr"
	"github.com/tickforge/engine/serializer"
)

func TestPrimitivesPassThrough(t *testing.T) {
	r := serializer.NewRegistry()

	cases := []any{"hello", true, false, 42, 3.14, nil}
	for _, c := range cases {
		got, err := r.Serialize(c)
		require.NoError(t, err)
		assert.Equal(t, c, got)

		back, err := r.Deserialize(got)
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
}

func TestSliceRoundTrip(t *testing.T) {
	r := serializer.NewRegistry()
	in := []any{1, "two", 3.0}

	wire, err := r.Serialize(in)
	require.NoError(t, err)

	wrapper, ok := wire.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Array", wrapper["__type"])

	back, err := r.Deserialize(wire)
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

func TestMapRoundTrip(t *testing.T) {
	r := serializer.NewRegistry()
	in := map[string]any{"a": 1, "b": "two"}

	wire, err := r.Serialize(in)
	require.NoError(t, err)

	wrapper := wire.(map[string]any)
	assert.Equal(t, "Object", wrapper["__type"])

	back, err := r.Deserialize(wire)
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

type point struct {
	X float64
	Y float64
}

func (p *point) SerializeData() any {
	return map[string]any{"x": p.X, "y": p.Y}
}

func (p *point) DeserializeData(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return errors.New("point: expected object")
	}
	p.X, _ = m["x"].(float64)
	p.Y, _ = m["y"].(float64)
	return nil
}

func TestRegisteredTypeRoundTrip(t *testing.T) {
	r := serializer.NewRegistry()
	r.Register("Point", func() serializer.Instance { return &point{} })

	in := &point{X: 1.5, Y: -2.5}
	wire, err := r.Serialize(in)
	require.NoError(t, err)

	wrapper := wire.(map[string]any)
	assert.Equal(t, "Point", wrapper["__type"])

	back, err := r.Deserialize(wire)
	require.NoError(t, err)

	out, ok := back.(*point)
	require.True(t, ok)
	assert.Equal(t, in.X, out.X)
	assert.Equal(t, in.Y, out.Y)
}

func TestUnregisteredTypeFallsBackToPlainRecord(t *testing.T) {
	r := serializer.NewRegistry()
	in := &point{X: 1, Y: 2}

	wire, err := r.Serialize(in)
	require.NoError(t, err)

	wrapper := wire.(map[string]any)
	assert.Equal(t, "Object", wrapper["__type"])
}

func TestUnknownTypeNameFallsBackOnDeserialize(t *testing.T) {
	r := serializer.NewRegistry()
	wire := map[string]any{
		"__type": "SomethingNeverRegistered",
		"__data": map[string]any{"a": 1},
	}
	back, err := r.Deserialize(wire)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, back)
}

type cyclic struct {
	next *cyclic
}

func (c *cyclic) SerializeData() any {
	return map[string]any{"next": c.next}
}

func (c *cyclic) DeserializeData(data any) error { return nil }

func TestSelfReferenceDetectedAsCycle(t *testing.T) {
	r := serializer.NewRegistry()
	r.Register("Cyclic", func() serializer.Instance { return &cyclic{} })

	a := &cyclic{}
	a.next = a

	_, err := r.Serialize(a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, enginerr.CycleDetected))
}

func TestDeepAcyclicChainIsNotFlaggedAsCycle(t *testing.T) {
	r := serializer.NewRegistry()
	r.Register("Cyclic", func() serializer.Instance { return &cyclic{} })

	var head *cyclic
	for i := 0; i < 10; i++ {
		head = &cyclic{next: head}
	}

	_, err := r.Serialize(head)
	assert.NoError(t, err)
}

func TestExcessiveDepthIsFlaggedAsCycle(t *testing.T) {
	r := serializer.NewRegistry()
	r.Register("Cyclic", func() serializer.Instance { return &cyclic{} })

	var head *cyclic
	for i := 0; i < 200; i++ {
		head = &cyclic{next: head}
	}

	_, err := r.Serialize(head)
	require.Error(t, err)
	assert.True(t, errors.Is(err, enginerr.CycleDetected))
}
