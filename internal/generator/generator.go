// Package generator renders a validated memory image into schematic blocks.
package generator

import (
	"fmt"

	"github.com/retroenv/memschem/internal/geom"
	"github.com/retroenv/memschem/internal/memory"
	"github.com/retroenv/memschem/internal/options"
	"github.com/retroenv/memschem/internal/schematic"
	"github.com/retroenv/retrogolib/log"
)

// Blocks of the fixed machine layout.
var (
	blockGlass    = schematic.MustBlock("minecraft:glass")
	blockTorchOn  = schematic.MustBlock("minecraft:redstone_wall_torch[facing=north]")
	blockBarrel   = schematic.MustBlock("minecraft:barrel[facing=up]")
	blockDataRail = schematic.MustBlock("minecraft:gray_wool")
	blockReadRail = schematic.MustBlock("minecraft:lime_wool")
)

const itemRedstone = "minecraft:redstone"

// UnsupportedPageError reports a ROM page index that has no physical encoding.
type UnsupportedPageError struct {
	Page int
}

func (e *UnsupportedPageError) Error() string {
	return fmt.Sprintf("ROM page %d has no supported encoding", e.Page)
}

type pageKind int

const (
	pageUnsupported pageKind = iota
	pageTorch
	pageBarrel
)

// pageLayout maps a ROM page index to its encoding and schematic origin.
type pageLayout struct {
	kind   pageKind
	origin geom.Vec3
}

// layoutForPage returns the layout record for a ROM page index.
// Page 0 is wired into the machine and cannot be loaded from a schematic.
func layoutForPage(page int) (pageLayout, error) {
	switch {
	case page == 0:
		return pageLayout{kind: pageUnsupported}, nil

	case page >= 1 && page <= 3:
		return pageLayout{
			kind:   pageTorch,
			origin: geom.V(-5, int16(-10-5*(page-1)), -5),
		}, nil

	case page >= 4 && page <= 15:
		// barrel pages alternate between two vertical columns, one pair of
		// pages per 4 block step along Z
		y := int16(-11)
		if page%2 == 0 {
			y -= 16
		}
		return pageLayout{
			kind:   pageBarrel,
			origin: geom.V(-13, y, int16(13+4*((page-4)/2))),
		}, nil

	default:
		return pageLayout{}, &UnsupportedPageError{Page: page}
	}
}

// Generator places a memory image into a schematic.
type Generator struct {
	logger *log.Logger
	schem  *schematic.Schematic
	opts   options.Generator
}

// New creates a new generator writing into the given schematic.
func New(logger *log.Logger, schem *schematic.Schematic, opts options.Generator) *Generator {
	return &Generator{
		logger: logger,
		schem:  schem,
		opts:   opts,
	}
}

// Generate places all supported ROM pages and, if enabled, the RAM write
// queue. Unsupported but populated regions are reported as warnings, the
// memory content itself is never modified.
func (g *Generator) Generate(mem *memory.Memory) error {
	if !mem.ROM[0].Zero() {
		g.logger.Warn("ROM page 0 is wired into the machine and cannot be loaded from a schematic, skipping it")
	}

	for page := 1; page < memory.PageCount; page++ {
		if err := g.placePage(page, &mem.ROM[page]); err != nil {
			return fmt.Errorf("placing ROM page %d: %w", page, err)
		}
	}

	writes := mem.RAMWrites()
	switch {
	case len(writes) == 0:
	case g.opts.WriteRAM:
		if err := g.placeRAM(writes); err != nil {
			return fmt.Errorf("placing RAM write queue: %w", err)
		}
	default:
		g.logger.Warn("RAM contains data but the write queue is disabled, pass -ram to emit it",
			log.Int("cells", len(writes)))
	}

	return nil
}

func (g *Generator) placePage(page int, data *memory.Page) error {
	layout, err := layoutForPage(page)
	if err != nil {
		return err
	}

	switch layout.kind {
	case pageTorch:
		return g.placeTorchPage(layout.origin, data)
	case pageBarrel:
		return g.placeBarrelPage(layout.origin, data)
	default:
		return &UnsupportedPageError{Page: page}
	}
}
