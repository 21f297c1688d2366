// Package geom provides integer 3D vectors and affine transforms for schematic placement.
package geom

import "fmt"

// Vec3 is a block position or direction in schematic space.
type Vec3 struct {
	X, Y, Z int16
}

// V is a shorthand constructor for Vec3.
func V(x, y, z int16) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// mat4 is a 4x4 integer matrix acting on homogeneous coordinates.
// The bottom row is always 0 0 0 1 for the transforms constructed here.
type mat4 [4][4]int16

func identityMat4() mat4 {
	return mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m mat4) mul(o mat4) mat4 {
	var result mat4
	for r := range 4 {
		for c := range 4 {
			var sum int16
			for k := range 4 {
				sum += m[r][k] * o[k][c]
			}
			result[r][c] = sum
		}
	}
	return result
}

func (m mat4) apply(v [4]int16) [4]int16 {
	var result [4]int16
	for r := range 4 {
		var sum int16
		for c := range 4 {
			sum += m[r][c] * v[c]
		}
		result[r] = sum
	}
	return result
}

// Transform is an invertible affine map on schematic coordinates.
// Positions transform with the homogeneous component set to 1, directions with 0.
type Transform struct {
	forward  mat4
	backward mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{forward: identityMat4(), backward: identityMat4()}
}

// Translate returns a transform moving positions by the given offset.
func Translate(offset Vec3) Transform {
	forward := identityMat4()
	forward[0][3] = offset.X
	forward[1][3] = offset.Y
	forward[2][3] = offset.Z

	backward := identityMat4()
	backward[0][3] = -offset.X
	backward[1][3] = -offset.Y
	backward[2][3] = -offset.Z

	return Transform{forward: forward, backward: backward}
}

// FlipX returns a transform mirroring the X axis.
func FlipX() Transform {
	m := identityMat4()
	m[0][0] = -1
	return Transform{forward: m, backward: m}
}

// FlipZ returns a transform mirroring the Z axis.
func FlipZ() Transform {
	m := identityMat4()
	m[2][2] = -1
	return Transform{forward: m, backward: m}
}

// Compose returns the transform applying o first, then t.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		forward:  t.forward.mul(o.forward),
		backward: o.backward.mul(t.backward),
	}
}

// Inverse returns the inverse transform.
func (t Transform) Inverse() Transform {
	return Transform{forward: t.backward, backward: t.forward}
}

// Pos maps a position through the transform.
func (t Transform) Pos(p Vec3) Vec3 {
	out := t.forward.apply([4]int16{p.X, p.Y, p.Z, 1})
	return Vec3{X: out[0], Y: out[1], Z: out[2]}
}

// Dir maps a direction through the transform, ignoring translation.
func (t Transform) Dir(d Vec3) Vec3 {
	out := t.forward.apply([4]int16{d.X, d.Y, d.Z, 0})
	return Vec3{X: out[0], Y: out[1], Z: out[2]}
}

// Compass maps a horizontal compass direction through the transform.
func (t Transform) Compass(c Compass) Compass {
	dx, dz := c.Vec()
	mapped := t.Dir(Vec3{X: dx, Z: dz})
	if mapped.Y != 0 {
		panic(fmt.Sprintf("transform maps compass direction %s out of the horizontal plane", c))
	}
	return compassFromVec(mapped.X, mapped.Z)
}

// Coords tracks a local coordinate frame inside the global schematic frame.
type Coords struct {
	transform Transform // local -> global
}

// NewCoords returns a coordinate frame with the given local to global transform.
func NewCoords(transform Transform) *Coords {
	return &Coords{transform: transform}
}

// ApplyLocal post-composes a transform in local coordinates.
func (c *Coords) ApplyLocal(t Transform) {
	c.transform = c.transform.Compose(t)
}

// Pos maps a local position to global coordinates.
func (c *Coords) Pos(p Vec3) Vec3 {
	return c.transform.Pos(p)
}

// Compass maps a local compass direction to global coordinates.
func (c *Coords) Compass(dir Compass) Compass {
	return c.transform.Compass(dir)
}
