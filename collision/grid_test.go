package collision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickforge/engine/collision"
	"github.com/tickforge/engine/vector"
)

func TestAddSuppressesDuplicate(t *testing.T) {
	g := collision.New(nil)
	p := vector.New(1, 2)

	assert.True(t, g.Add(p, "ball-1"))
	assert.False(t, g.Add(p, "ball-1"), "duplicate (source, point) must be suppressed")
	assert.Equal(t, 1, g.Size())
}

func TestAddSamePointDifferentSource(t *testing.T) {
	g := collision.New(nil)
	p := vector.New(1, 2)

	g.Add(p, "ball-1")
	g.Add(p, "ball-2")

	sources := g.ContainsPoint(p)
	assert.Equal(t, []collision.Source{"ball-1", "ball-2"}, sources, "bucket order must be insertion order")
}

func TestRemove(t *testing.T) {
	g := collision.New(nil)
	p := vector.New(3, 4)
	g.Add(p, "x")

	assert.True(t, g.Remove(p, "x"))
	assert.False(t, g.Remove(p, "x"), "removing again is a no-op returning false")
	assert.Empty(t, g.ContainsPoint(p))
}

func TestRemoveSourceRemovesAllItsPoints(t *testing.T) {
	g := collision.New(nil)
	g.Add(vector.New(0, 0), "s")
	g.Add(vector.New(1, 1), "s")
	g.Add(vector.New(1, 1), "other")

	assert.True(t, g.RemoveSource("s"))
	assert.Empty(t, g.ContainsPoint(vector.New(0, 0)))
	assert.Equal(t, []collision.Source{"other"}, g.ContainsPoint(vector.New(1, 1)))
	assert.False(t, g.RemoveSource("s"))
}

func TestPointsAreBitExactKeys(t *testing.T) {
	g := collision.New(nil)
	g.Add(vector.New(0.1+0.2, 0), "a")

	assert.Empty(t, g.ContainsPoint(vector.New(0.3, 0)), "0.1+0.2 is not bit-exact equal to 0.3")
	assert.NotEmpty(t, g.ContainsPoint(vector.New(0.1+0.2, 0)))
}

func TestClear(t *testing.T) {
	g := collision.New(nil)
	g.Add(vector.New(0, 0), "a")
	g.Add(vector.New(1, 1), "b")

	g.Clear()
	assert.Equal(t, 0, g.Size())
}

func TestPointsChangedEmitted(t *testing.T) {
	var events int
	g := collision.New(func(event string, payload any) {
		if event == "POINTS_CHANGED" {
			events++
		}
	})

	p := vector.New(5, 5)
	g.Add(p, "a")
	g.Add(p, "a") // duplicate, no emit
	g.Remove(p, "a")

	assert.Equal(t, 2, events)
}
