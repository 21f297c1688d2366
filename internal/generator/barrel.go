package generator

import (
	"github.com/retroenv/memschem/internal/geom"
	"github.com/retroenv/memschem/internal/memory"
	"github.com/retroenv/memschem/internal/schematic"
)

// maxStackSize is the item count limit of a single container slot.
const maxStackSize = 64

// signalStrengthItems holds the redstone item count a barrel has to contain
// for a comparator to read each signal strength from it. The comparator
// curve over the 27 slot barrel is not linear in the strength, the counts
// are a fixed contract of the game and must not be derived.
var signalStrengthItems = [16]int{
	0, 123, 246, 370, 493, 617, 740, 863,
	987, 1110, 1234, 1357, 1481, 1604, 1727, 1728,
}

// StackCounts decomposes the item total for a signal strength into full
// stacks of 64 followed by the remainder, the packing the machine expects in
// the barrel slots. Strength 0 yields no stacks at all: such a cell renders
// as plain glass, never as a container.
func StackCounts(ss uint8) []int {
	n := signalStrengthItems[ss]

	var counts []int
	for n >= maxStackSize {
		counts = append(counts, maxStackSize)
		n -= maxStackSize
	}
	if n != 0 {
		counts = append(counts, n)
	}
	return counts
}

// barrelItems returns the slot list for a barrel encoding the given
// signal strength.
func barrelItems(ss uint8) []schematic.ItemSlot {
	counts := StackCounts(ss)
	items := make([]schematic.ItemSlot, 0, len(counts))
	for slot, count := range counts {
		items = append(items, schematic.ItemSlot{
			ID:    itemRedstone,
			Slot:  int8(slot),
			Count: int8(count),
		})
	}
	return items
}

// placeBarrelPage renders a ROM page read by comparators: each cell becomes
// a barrel filled for the cell's signal strength, or glass for zero.
// The page is laid out as 8 rows of 32 cells, rows stepping down along Y
// and cells stepping along X.
func (g *Generator) placeBarrelPage(origin geom.Vec3, data *memory.Page) error {
	for row := range 8 {
		for col := range 32 {
			ss := data[col+32*row]
			pos := origin.Add(geom.V(int16(-2*col), int16(-2*row), 0))

			if ss == 0 {
				if err := g.schem.Set(pos, blockGlass); err != nil {
					return err
				}
				continue
			}
			if err := g.schem.SetContainer(pos, blockBarrel, barrelItems(ss)); err != nil {
				return err
			}
		}
	}
	return nil
}
