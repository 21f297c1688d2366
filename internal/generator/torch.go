package generator

import (
	"github.com/retroenv/memschem/internal/geom"
	"github.com/retroenv/memschem/internal/memory"
)

// NibbleBits decomposes a 4 bit value into its binary digits,
// most significant bit first.
func NibbleBits(n uint8) [4]bool {
	var bits [4]bool
	for i := range 4 {
		bits[i] = n&(1<<(3-i)) != 0
	}
	return bits
}

// placeTorchPage renders a ROM page read by torch lines: each cell becomes
// 4 positions holding a lit wall torch for 1-bits and glass for 0-bits.
// The page is laid out as 8 rows of 32 cells, rows stepping along X and
// cells stepping along Z.
func (g *Generator) placeTorchPage(origin geom.Vec3, data *memory.Page) error {
	for i, n := range data {
		row := int16(i / 32)
		col := int16(i % 32)
		cell := origin.Add(geom.V(-8*row, 0, -2*col))

		for bit, set := range NibbleBits(n) {
			block := blockGlass
			if set {
				block = blockTorchOn
			}
			if err := g.schem.Set(cell.Add(geom.V(int16(-2*bit), 0, 0)), block); err != nil {
				return err
			}
		}
	}
	return nil
}
