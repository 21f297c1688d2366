// Package memory loads and validates the JSON memory image of the machine.
package memory

// Machine memory dimensions. The layout of the machine is fixed, these are
// part of the input contract and not configurable.
const (
	PageCount = 16   // ROM pages
	PageSize  = 256  // nibble cells per ROM page
	RAMSize   = 4096 // 16 bit cells in RAM
)

// Page is one ROM page, one 4 bit value per cell.
type Page [PageSize]uint8

// Zero reports whether all cells of the page are zero.
func (p *Page) Zero() bool {
	for _, n := range p {
		if n != 0 {
			return false
		}
	}
	return true
}

// Memory is a validated memory image. It is read-only after loading.
type Memory struct {
	ROM [PageCount]Page
	RAM [RAMSize]uint16
}

// RAMWrite is one nonzero RAM cell.
type RAMWrite struct {
	Address uint16
	Value   uint16
}

// RAMWrites returns the nonzero RAM cells in address order.
func (m *Memory) RAMWrites() []RAMWrite {
	var writes []RAMWrite
	for addr, value := range m.RAM {
		if value != 0 {
			writes = append(writes, RAMWrite{Address: uint16(addr), Value: value})
		}
	}
	return writes
}
