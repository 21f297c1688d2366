package generator

import (
	"errors"
	"testing"

	"github.com/retroenv/memschem/internal/geom"
	"github.com/retroenv/memschem/internal/memory"
	"github.com/retroenv/memschem/internal/options"
	"github.com/retroenv/memschem/internal/schematic"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestGenerator(t *testing.T, opts options.Generator) (*Generator, *schematic.Schematic) {
	t.Helper()
	schem := schematic.New(2975)
	return New(log.NewTestLogger(t), schem, opts), schem
}

func TestLayoutForPage(t *testing.T) {
	tests := []struct {
		page    int
		kind    pageKind
		origin  geom.Vec3
		wantErr bool
	}{
		{page: 0, kind: pageUnsupported},
		{page: 1, kind: pageTorch, origin: geom.V(-5, -10, -5)},
		{page: 2, kind: pageTorch, origin: geom.V(-5, -15, -5)},
		{page: 3, kind: pageTorch, origin: geom.V(-5, -20, -5)},
		{page: 4, kind: pageBarrel, origin: geom.V(-13, -27, 13)},
		{page: 5, kind: pageBarrel, origin: geom.V(-13, -11, 13)},
		{page: 6, kind: pageBarrel, origin: geom.V(-13, -27, 17)},
		{page: 15, kind: pageBarrel, origin: geom.V(-13, -11, 33)},
		{page: -1, wantErr: true},
		{page: 16, wantErr: true},
	}

	for _, tt := range tests {
		layout, err := layoutForPage(tt.page)
		if tt.wantErr {
			assert.Error(t, err)
			var pageErr *UnsupportedPageError
			assert.True(t, errors.As(err, &pageErr))
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.kind, layout.kind)
		assert.Equal(t, tt.origin, layout.origin)
	}
}

func TestGenerateZeroMemory(t *testing.T) {
	gen, schem := newTestGenerator(t, options.NewGenerator())

	assert.NoError(t, gen.Generate(&memory.Memory{}))

	// pages 1-3 emit 4 indicator blocks per cell, pages 4-15 one block per
	// cell, all of them inert glass
	wantBlocks := 3*memory.PageSize*4 + 12*memory.PageSize
	assert.Equal(t, wantBlocks, schem.Len())
	assert.Equal(t, 0, schem.Containers())
}

func TestGenerateTorchPage(t *testing.T) {
	gen, schem := newTestGenerator(t, options.NewGenerator())

	mem := &memory.Memory{}
	mem.ROM[1][0] = 9  // 1001: torches at bit 0 and bit 3
	mem.ROM[1][33] = 1 // row 1, column 1

	assert.NoError(t, gen.Generate(mem))

	torch := blockTorchOn.String()
	glass := blockGlass.String()

	// cell 0 renders at the page origin
	origin := geom.V(-5, -10, -5)
	wantBits := []string{torch, glass, glass, torch}
	for bit, want := range wantBits {
		block, ok := schem.Get(origin.Add(geom.V(int16(-2*bit), 0, 0)))
		assert.True(t, ok)
		assert.Equal(t, want, block.String())
	}

	// cell 33 renders one row (-8 on X) and one column (-2 on Z) further
	block, ok := schem.Get(geom.V(-5-8-6, -10, -5-2))
	assert.True(t, ok)
	assert.Equal(t, torch, block.String())
}

func TestGenerateBarrelPage(t *testing.T) {
	gen, schem := newTestGenerator(t, options.NewGenerator())

	mem := &memory.Memory{}
	mem.ROM[4][0] = 7
	mem.ROM[4][33] = 15 // row 1, column 1

	assert.NoError(t, gen.Generate(mem))
	assert.Equal(t, 2, schem.Containers())

	origin := geom.V(-13, -27, 13)
	block, ok := schem.Get(origin)
	assert.True(t, ok)
	assert.Equal(t, blockBarrel.String(), block.String())

	block, ok = schem.Get(origin.Add(geom.V(-2, -2, 0)))
	assert.True(t, ok)
	assert.Equal(t, blockBarrel.String(), block.String())

	// zero cells stay glass
	block, ok = schem.Get(origin.Add(geom.V(-4, 0, 0)))
	assert.True(t, ok)
	assert.Equal(t, blockGlass.String(), block.String())
}

func TestGenerateRAMDisabled(t *testing.T) {
	gen, schem := newTestGenerator(t, options.NewGenerator())

	mem := &memory.Memory{}
	mem.RAM[10] = 1234

	// without the write queue enabled the RAM content only logs a warning
	assert.NoError(t, gen.Generate(mem))
	zeroGen, zeroSchem := newTestGenerator(t, options.NewGenerator())
	assert.NoError(t, zeroGen.Generate(&memory.Memory{}))
	assert.Equal(t, zeroSchem.Len(), schem.Len())
}

func TestGeneratePageZeroWarning(t *testing.T) {
	gen, schem := newTestGenerator(t, options.NewGenerator())

	mem := &memory.Memory{}
	mem.ROM[0][0] = 5

	// page 0 content is skipped with a warning, the placed blocks match an
	// empty image
	assert.NoError(t, gen.Generate(mem))
	wantBlocks := 3*memory.PageSize*4 + 12*memory.PageSize
	assert.Equal(t, wantBlocks, schem.Len())
}
