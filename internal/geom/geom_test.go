package geom

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTranslatePos(t *testing.T) {
	tr := Translate(V(2, -3, 5))

	assert.Equal(t, V(3, -2, 6), tr.Pos(V(1, 1, 1)))
	assert.Equal(t, V(1, 1, 1), tr.Inverse().Pos(V(3, -2, 6)))
	// directions are unaffected by translation
	assert.Equal(t, V(1, 1, 1), tr.Dir(V(1, 1, 1)))
}

func TestCompose(t *testing.T) {
	// compose applies the right-hand transform first
	tr := FlipX().Compose(Translate(V(1, 0, 0)))

	assert.Equal(t, V(-1, 0, 0), tr.Pos(V(0, 0, 0)))
	assert.Equal(t, V(0, 0, 0), tr.Inverse().Pos(V(-1, 0, 0)))
}

func TestFlipRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
	}{
		{name: "flip x", tr: FlipX()},
		{name: "flip z", tr: FlipZ()},
		{name: "identity", tr: Identity()},
		{name: "layered", tr: Translate(V(47, -49, -78)).Compose(FlipX().Compose(Translate(V(0, 4, 0))))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := V(7, -2, 13)
			assert.Equal(t, p, tt.tr.Inverse().Pos(tt.tr.Pos(p)))
		})
	}
}

func TestCompassVecRoundTrip(t *testing.T) {
	for _, c := range []Compass{North, East, South, West} {
		dx, dz := c.Vec()
		assert.Equal(t, c, compassFromVec(dx, dz))
	}
}

func TestCompassOpposite(t *testing.T) {
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, West, East.Opposite())
	assert.Equal(t, North, South.Opposite())
	assert.Equal(t, East, West.Opposite())
}

func TestTransformCompass(t *testing.T) {
	// mirroring the X axis swaps east and west but keeps north and south
	assert.Equal(t, West, FlipX().Compass(East))
	assert.Equal(t, North, FlipX().Compass(North))
	assert.Equal(t, South, FlipZ().Compass(North))
	assert.Equal(t, East, Translate(V(5, 5, 5)).Compass(East))
}

func TestCoords(t *testing.T) {
	c := NewCoords(Translate(V(10, 0, 0)))
	assert.Equal(t, V(10, 0, 0), c.Pos(V(0, 0, 0)))

	c.ApplyLocal(Translate(V(2, 0, 0)))
	assert.Equal(t, V(12, 0, 0), c.Pos(V(0, 0, 0)))

	c.ApplyLocal(FlipX().Compose(Translate(V(0, 4, 0))))
	assert.Equal(t, V(12, 4, 0), c.Pos(V(0, 0, 0)))
	// after the flip, local +X runs in the global -X direction
	assert.Equal(t, V(11, 4, 0), c.Pos(V(1, 0, 0)))
	assert.Equal(t, West, c.Compass(East))
}
