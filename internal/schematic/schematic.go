// Package schematic accumulates block placements and persists them as a
// Sponge version 2 .schem file, the structure format read by WorldEdit.
package schematic

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/retroenv/memschem/internal/geom"
)

var blockAir = Block{id: "minecraft:air"}

// ErrEmpty is returned when encoding a schematic without any blocks.
var ErrEmpty = errors.New("schematic contains no blocks")

// ItemSlot is one item stack inside a container block entity.
type ItemSlot struct {
	ID    string
	Slot  int8
	Count int8
}

// Schematic is an append-only, coordinate-indexed collection of block
// placements. It is write-only for callers: blocks are never read back,
// only encoded once at the end of a run.
type Schematic struct {
	dataVersion int32
	blocks      map[geom.Vec3]Block
	containers  map[geom.Vec3][]ItemSlot
}

// New creates an empty schematic targeting the given Minecraft data version.
func New(dataVersion int32) *Schematic {
	return &Schematic{
		dataVersion: dataVersion,
		blocks:      map[geom.Vec3]Block{},
		containers:  map[geom.Vec3][]ItemSlot{},
	}
}

// Set places a block at the given position.
// Placing two blocks at the same position is an error.
func (s *Schematic) Set(pos geom.Vec3, block Block) error {
	if block.IsZero() {
		return fmt.Errorf("placing zero block at %v", pos)
	}
	if _, exists := s.blocks[pos]; exists {
		return fmt.Errorf("position %v is already occupied", pos)
	}
	s.blocks[pos] = block
	return nil
}

// SetContainer places a container block with the given item stacks as its
// block entity payload.
func (s *Schematic) SetContainer(pos geom.Vec3, block Block, items []ItemSlot) error {
	if err := s.Set(pos, block); err != nil {
		return err
	}
	s.containers[pos] = items
	return nil
}

// Get returns the block placed at the given position.
func (s *Schematic) Get(pos geom.Vec3) (Block, bool) {
	block, ok := s.blocks[pos]
	return block, ok
}

// Len returns the number of placed blocks.
func (s *Schematic) Len() int {
	return len(s.blocks)
}

// Containers returns the number of placed container block entities.
func (s *Schematic) Containers() int {
	return len(s.containers)
}

// Encode writes the schematic as a gzip-compressed, big-endian NBT document
// with the root compound named Schematic. The output is byte-deterministic:
// cells are walked in Y, Z, X order, the palette is assigned in first-seen
// order and block entities are emitted in cell order.
func (s *Schematic) Encode(w io.Writer) error {
	if len(s.blocks) == 0 {
		return ErrEmpty
	}

	minPos, maxPos := s.bounds()
	width := int(maxPos.X) - int(minPos.X) + 1
	height := int(maxPos.Y) - int(minPos.Y) + 1
	length := int(maxPos.Z) - int(minPos.Z) + 1

	paletteIndex := map[string]int32{}
	var paletteNames []string
	var blockData []byte
	var entityPositions []geom.Vec3

	for y := range height {
		for z := range length {
			for x := range width {
				pos := minPos.Add(geom.V(int16(x), int16(y), int16(z)))
				block, ok := s.blocks[pos]
				if !ok {
					block = blockAir
				}

				name := block.String()
				id, known := paletteIndex[name]
				if !known {
					id = int32(len(paletteNames))
					paletteIndex[name] = id
					paletteNames = append(paletteNames, name)
				}
				blockData = appendVarint(blockData, id)

				if _, isContainer := s.containers[pos]; isContainer {
					entityPositions = append(entityPositions, pos)
				}
			}
		}
	}

	gz := gzip.NewWriter(w)
	nw := newNBTWriter(gz)

	nw.BeginCompound("Schematic")
	nw.Int("Version", 2)
	nw.Int("DataVersion", s.dataVersion)

	nw.BeginCompound("Metadata")
	nw.Int("WEOffsetX", int32(minPos.X))
	nw.Int("WEOffsetY", int32(minPos.Y))
	nw.Int("WEOffsetZ", int32(minPos.Z))
	nw.End()

	nw.Short("Width", int16(width))
	nw.Short("Height", int16(height))
	nw.Short("Length", int16(length))
	nw.Int("PaletteMax", int32(len(paletteNames)))

	nw.BeginCompound("Palette")
	for _, name := range paletteNames {
		nw.Int(name, paletteIndex[name])
	}
	nw.End()

	nw.ByteArray("BlockData", blockData)

	nw.BeginList("BlockEntities", tagCompound, len(entityPositions))
	for _, pos := range entityPositions {
		nw.IntArray("Pos", []int32{
			int32(pos.X - minPos.X),
			int32(pos.Y - minPos.Y),
			int32(pos.Z - minPos.Z),
		})
		nw.String("Id", "minecraft:barrel")
		items := s.containers[pos]
		nw.BeginList("Items", tagCompound, len(items))
		for _, item := range items {
			nw.Byte("Count", item.Count)
			nw.Byte("Slot", item.Slot)
			nw.String("id", item.ID)
			nw.End()
		}
		nw.End()
	}
	nw.End()

	if err := nw.Err(); err != nil {
		return fmt.Errorf("writing NBT document: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip stream: %w", err)
	}
	return nil
}

func (s *Schematic) bounds() (geom.Vec3, geom.Vec3) {
	first := true
	var minPos, maxPos geom.Vec3
	for pos := range s.blocks {
		if first {
			minPos, maxPos = pos, pos
			first = false
			continue
		}
		minPos.X = min(minPos.X, pos.X)
		minPos.Y = min(minPos.Y, pos.Y)
		minPos.Z = min(minPos.Z, pos.Z)
		maxPos.X = max(maxPos.X, pos.X)
		maxPos.Y = max(maxPos.Y, pos.Y)
		maxPos.Z = max(maxPos.Z, pos.Z)
	}
	return minPos, maxPos
}

// appendVarint appends the 7-bit varint encoding of a palette ID, the integer
// packing the Sponge format uses for block data.
func appendVarint(data []byte, id int32) []byte {
	for id&^0x7f != 0 {
		data = append(data, byte(id&0x7f|0x80))
		id >>= 7
	}
	return append(data, byte(id))
}
