package prng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickforge/engine/prng"
)

func TestSeedDeterminism(t *testing.T) {
	a := prng.New("prng-test-123")
	b := prng.New("prng-test-123")

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Random(), b.Random(), "output %d diverged", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := prng.New("seed-a")
	b := prng.New("seed-b")

	same := true
	for i := 0; i < 20; i++ {
		if a.Random() != b.Random() {
			same = false
			break
		}
	}
	assert.False(t, same, "distinct seeds should not produce identical streams")
}

func TestRandomRange(t *testing.T) {
	p := prng.New("range-test")
	for i := 0; i < 1000; i++ {
		v := p.Random()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRandomIntBounds(t *testing.T) {
	p := prng.New("int-test")
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := p.RandomInt(3, 7)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 7)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "expected all five integers in range to appear")
}

func TestRandomIntSingleton(t *testing.T) {
	p := prng.New("single")
	for i := 0; i < 10; i++ {
		assert.Equal(t, 4, p.RandomInt(4, 4))
	}
}

func TestRandomFloatRange(t *testing.T) {
	p := prng.New("float-test")
	for i := 0; i < 200; i++ {
		v := p.RandomFloat(-2, 2)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 2.0)
	}
}

func TestRandomBooleanExtremes(t *testing.T) {
	p := prng.New("bool-test")
	for i := 0; i < 20; i++ {
		assert.True(t, p.RandomBoolean(1))
		assert.False(t, p.RandomBoolean(0))
	}
}

func TestRandomChoice(t *testing.T) {
	p := prng.New("choice-test")
	options := []string{"a", "b", "c"}
	for i := 0; i < 50; i++ {
		choice := prng.RandomChoice(p, options)
		assert.Contains(t, options, choice)
	}
}

func TestResetReproducesStream(t *testing.T) {
	p := prng.New("reset-test")
	first := make([]float64, 10)
	for i := range first {
		first[i] = p.Random()
	}

	p.Reset("reset-test")
	for i := 0; i < 10; i++ {
		require.Equal(t, first[i], p.Random())
	}
}

func TestResetChangesSeed(t *testing.T) {
	p := prng.New("a")
	assert.Equal(t, "a", p.Seed())
	p.Reset("b")
	assert.Equal(t, "b", p.Seed())
}
