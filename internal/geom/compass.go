package geom

import "fmt"

// Compass is a horizontal cardinal direction.
type Compass int

// Compass directions, following the Minecraft convention of north being -Z.
const (
	North Compass = iota
	East
	South
	West
)

// Vec returns the (dx, dz) unit vector pointing in the direction of c.
func (c Compass) Vec() (int16, int16) {
	switch c {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		panic(fmt.Sprintf("invalid compass direction %d", c))
	}
}

// Opposite returns the direction pointing the other way.
func (c Compass) Opposite() Compass {
	return (c + 2) % 4
}

func (c Compass) String() string {
	switch c {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Compass(%d)", int(c))
	}
}

func compassFromVec(dx, dz int16) Compass {
	switch {
	case dx == 0 && dz == -1:
		return North
	case dx == 1 && dz == 0:
		return East
	case dx == 0 && dz == 1:
		return South
	case dx == -1 && dz == 0:
		return West
	default:
		panic(fmt.Sprintf("vector (%d, %d) is not a compass direction", dx, dz))
	}
}
