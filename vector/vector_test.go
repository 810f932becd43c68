package vector_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickforge/engine/vector"
)

func TestAddSubScale(t *testing.T) {
	a := vector.New(1, 2)
	b := vector.New(3, -1)

	assert.Equal(t, vector.New(4, 1), a.Add(b))
	assert.Equal(t, vector.New(-2, 3), a.Sub(b))
	assert.Equal(t, vector.New(2, 4), a.Scale(2))
}

func TestDistanceAndLen(t *testing.T) {
	a := vector.New(0, 0)
	b := vector.New(3, 4)
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, 5.0, b.Len())
	assert.Equal(t, 25.0, b.SqLen())
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, vector.Zero, vector.Zero.Normalize())
}

func TestNormalizeUnit(t *testing.T) {
	v := vector.New(3, 4).Normalize()
	assert.InDelta(t, 1.0, v.Len(), 1e-12)
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, 0.0, vector.New(1, 0).Angle(), 1e-12)
	assert.InDelta(t, math.Pi/2, vector.New(0, 1).Angle(), 1e-12)
}

func TestAngleTo(t *testing.T) {
	a := vector.New(1, 0)
	b := vector.New(0, 1)
	assert.InDelta(t, math.Pi/2, a.AngleTo(b), 1e-12)
}

func TestRotate(t *testing.T) {
	v := vector.New(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, v.X, 1e-9)
	assert.InDelta(t, 1.0, v.Y, 1e-9)
}

func TestLerp(t *testing.T) {
	a := vector.New(0, 0)
	b := vector.New(10, 10)
	assert.Equal(t, vector.New(5, 5), a.Lerp(b, 0.5))
}

func TestEqualIsBitExact(t *testing.T) {
	a := vector.New(0.1+0.2, 1)
	b := vector.New(0.3, 1)
	assert.False(t, a.Equal(b), "0.1+0.2 != 0.3 exactly in float64")
	assert.True(t, a.Equal(a))
}

func TestIsZero(t *testing.T) {
	assert.True(t, vector.Zero.IsZero())
	assert.False(t, vector.New(0, 0.0001).IsZero())
}
