// Package options contains the program options.
package options

import "github.com/retroenv/memschem/internal/geom"

// Program options of the schematic generator CLI.
type Program struct {
	Input  string // memory image JSON file
	Output string // output .schem file
	Layout string // optional layout configuration file

	Strict   bool // reject short rom pages and a missing ram block
	WriteRAM bool // emit the RAM write queue cards
	Verify   bool // re-encode after writing and compare with the output file
	Debug    bool
	Quiet    bool
}

// Minecraft 1.18.2, the version the machine is built in.
const defaultDataVersion = 2975

// Generator defines options to control the schematic generator.
type Generator struct {
	DataVersion int32     // data version stamped into the schematic
	RAMOrigin   geom.Vec3 // schematic position of the RAM write queue feed-in
	WriteRAM    bool
}

// NewGenerator returns a new options instance with default options.
func NewGenerator() Generator {
	return Generator{
		DataVersion: defaultDataVersion,
		RAMOrigin:   geom.V(47, -49, -78),
	}
}
