package generator

import (
	"fmt"

	"github.com/retroenv/memschem/internal/geom"
	"github.com/retroenv/memschem/internal/memory"
	"github.com/retroenv/memschem/internal/schematic"
)

// The RAM write queue is a stack of cards next to the machine's RAM input.
// Each card carries one write as torch-programmed bit lines: the address in
// the first two sections, the value in the last two. The machine clocks
// through the cards one by one, so every data card is followed by a blank
// card for signal settling, and after cardsPerLayer cards the queue folds
// back into a new layer above the previous one.
const cardsPerLayer = 8

// sectionSizes are the bit line groups of one card: low address bits, high
// address bits plus the two control bits, low value bits, high value bits.
var sectionSizes = [4]int{8, 6, 8, 8}

func dust(power int) schematic.Block {
	return schematic.MustBlock(fmt.Sprintf("minecraft:redstone_wire[power=%d]", power))
}

func torch(lit bool) schematic.Block {
	return schematic.MustBlock(fmt.Sprintf("minecraft:redstone_torch[lit=%t]", lit))
}

func wallTorch(facing geom.Compass, lit bool) schematic.Block {
	return schematic.MustBlock(fmt.Sprintf("minecraft:redstone_wall_torch[facing=%s,lit=%t]", facing, lit))
}

// repeater builds a repeater block. The facing property of a repeater names
// the direction it is powered from, the opposite of where it points.
func repeater(facing geom.Compass, delay int, powered bool) schematic.Block {
	return schematic.MustBlock(fmt.Sprintf("minecraft:repeater[delay=%d,facing=%s,powered=%t]",
		delay, facing.Opposite(), powered))
}

// ramCard places the write queue cards, tracking the local frame of the
// card being built.
type ramCard struct {
	schem  *schematic.Schematic
	coords *geom.Coords
}

func (g *Generator) placeRAM(writes []memory.RAMWrite) error {
	card := &ramCard{
		schem:  g.schem,
		coords: geom.NewCoords(geom.Translate(g.opts.RAMOrigin)),
	}

	if err := card.placeStart(); err != nil {
		return err
	}

	cardIndex := 0
	place := func(bits [4][]bool) error {
		if cardIndex == cardsPerLayer {
			cardIndex = 0
			if err := card.placeNewLayer(); err != nil {
				return err
			}
		}
		cardIndex++
		return card.placeData(bits)
	}

	for _, write := range writes {
		if err := place(writeBits(write)); err != nil {
			return fmt.Errorf("write %d=%d: %w", write.Address, write.Value, err)
		}
		// blank settling card
		if err := place(blankBits()); err != nil {
			return fmt.Errorf("write %d=%d: %w", write.Address, write.Value, err)
		}
	}
	return nil
}

// writeBits splits one RAM write into the card's bit line sections,
// least significant bit first within each section. The two control bits of
// the second section mark the card as a write command.
func writeBits(write memory.RAMWrite) [4][]bool {
	bits := blankBits()
	for i := range 8 {
		bits[0][i] = write.Address&(1<<i) != 0
		bits[2][i] = write.Value&(1<<i) != 0
		bits[3][i] = write.Value&(1<<(8+i)) != 0
	}
	for i := range 4 {
		bits[1][i] = write.Address&(1<<(8+i)) != 0
	}
	bits[1][5] = true
	return bits
}

func blankBits() [4][]bool {
	var bits [4][]bool
	for i, size := range sectionSizes {
		bits[i] = make([]bool, size)
	}
	return bits
}

// placeStacked places a block pattern along the card's bit lines:
// first goes at the offset itself, aligned on every bit line, between in the
// gaps inside a section and join in the gaps between sections. Nil block
// pointers skip their part of the pattern.
func (c *ramCard) placeStacked(offset geom.Vec3, first, aligned, between, join *schematic.Block) error {
	if first != nil {
		if err := c.schem.Set(c.coords.Pos(offset), *first); err != nil {
			return err
		}
	}
	if aligned != nil {
		dz := int16(2)
		for _, size := range sectionSizes {
			for range size {
				if err := c.schem.Set(c.coords.Pos(offset.Add(geom.V(0, 0, dz))), *aligned); err != nil {
					return err
				}
				dz += 2
			}
		}
	}
	if between != nil {
		dz := int16(3)
		for _, size := range sectionSizes {
			for range size - 1 {
				if err := c.schem.Set(c.coords.Pos(offset.Add(geom.V(0, 0, dz))), *between); err != nil {
					return err
				}
				dz += 2
			}
			dz += 2
		}
	}
	if join != nil {
		dz := int16(1)
		for _, size := range sectionSizes {
			if err := c.schem.Set(c.coords.Pos(offset.Add(geom.V(0, 0, dz))), *join); err != nil {
				return err
			}
			dz += 2 * int16(size)
		}
	}
	return nil
}

// placeData places one card and advances the local frame to the next slot.
func (c *ramCard) placeData(bits [4][]bool) error {
	readRepeater := repeater(c.coords.Compass(geom.East), 3, true)
	joinRepeater := repeater(c.coords.Compass(geom.South), 1, true)
	dataRepeater := repeater(c.coords.Compass(geom.West), 3, false)
	dustFull := dust(15)
	dustOff := dust(0)

	// read lines
	if err := c.placeStacked(geom.V(0, 0, 0), &blockReadRail, nil, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(0, 1, 0), &readRepeater, nil, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(1, 0, 0), &blockReadRail, &blockReadRail, &blockReadRail, &blockReadRail); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(1, 1, 0), &dustFull, &dustFull, &dustFull, &joinRepeater); err != nil {
		return err
	}

	// the torches programming the card's bits
	bitTorch := wallTorch(c.coords.Compass(geom.West), false)
	dz := int16(2)
	for _, section := range bits {
		for _, set := range section {
			if set {
				if err := c.schem.Set(c.coords.Pos(geom.V(0, 0, dz)), bitTorch); err != nil {
					return err
				}
			}
			dz += 2
		}
	}

	// data lines
	if err := c.placeStacked(geom.V(0, -2, 0), nil, &blockDataRail, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(1, -2, 0), nil, &blockDataRail, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(0, -1, 0), nil, &dustOff, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(1, -1, 0), nil, &dataRepeater, nil, nil); err != nil {
		return err
	}

	c.coords.ApplyLocal(geom.Translate(geom.V(2, 0, 0)))
	return nil
}

// placeNewLayer folds the queue into the next layer: the read line climbs
// two torch inverters and the data lines wrap around the fold.
func (c *ramCard) placeNewLayer() error {
	dustFull := dust(15)
	dustOff := dust(0)
	foldRepeater := repeater(c.coords.Compass(geom.West), 1, false)
	torchOff := torch(false)
	torchOn := torch(true)

	for _, step := range []struct {
		pos   geom.Vec3
		block schematic.Block
	}{
		{pos: geom.V(0, 1, 0), block: blockReadRail},
		{pos: geom.V(0, 2, 0), block: dustFull},
		{pos: geom.V(1, 2, 0), block: blockReadRail},
		{pos: geom.V(1, 3, 0), block: torchOff},
		{pos: geom.V(1, 4, 0), block: blockReadRail},
		{pos: geom.V(1, 5, 0), block: torchOn},
	} {
		if err := c.schem.Set(c.coords.Pos(step.pos), step.block); err != nil {
			return err
		}
	}

	for _, offset := range []geom.Vec3{
		geom.V(0, -2, 0), geom.V(0, 0, 0), geom.V(1, -1, 0), geom.V(2, 0, 0), geom.V(1, 1, 0),
	} {
		if err := c.placeStacked(offset, nil, &blockDataRail, nil, nil); err != nil {
			return err
		}
	}
	if err := c.placeStacked(geom.V(0, -1, 0), nil, &dustOff, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(1, 0, 0), nil, &foldRepeater, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(2, 1, 0), nil, &dustOff, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(1, 2, 0), nil, &dustOff, nil, nil); err != nil {
		return err
	}

	c.coords.ApplyLocal(geom.FlipX().Compose(geom.Translate(geom.V(0, 4, 0))))
	return nil
}

// placeStart places the queue's feed-in end: the data line stubs and the
// read pulse input.
func (c *ramCard) placeStart() error {
	dustOff := dust(0)
	startRepeater := repeater(c.coords.Compass(geom.West), 1, false)
	pulseRepeater := repeater(c.coords.Compass(geom.East), 1, false)
	pulseTorch := wallTorch(geom.East, true)

	for _, x := range []int16{-1, -2, -3} {
		if err := c.placeStacked(geom.V(x, -2, 0), nil, &blockDataRail, nil, nil); err != nil {
			return err
		}
		lineTop := &dustOff
		if x == -3 {
			lineTop = &startRepeater
		}
		if err := c.placeStacked(geom.V(x, -1, 0), nil, lineTop, nil, nil); err != nil {
			return err
		}
	}

	if err := c.placeStacked(geom.V(-2, 1, 0), &blockReadRail, nil, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(-3, 0, 0), &blockReadRail, nil, nil, nil); err != nil {
		return err
	}
	if err := c.placeStacked(geom.V(-1, 1, 0), &pulseTorch, nil, nil, nil); err != nil {
		return err
	}
	return c.placeStacked(geom.V(-3, 1, 0), &pulseRepeater, nil, nil, nil)
}
