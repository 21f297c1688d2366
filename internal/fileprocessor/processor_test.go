package fileprocessor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/memschem/internal/memory"
	"github.com/retroenv/memschem/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeMemoryFile(t *testing.T, dir string, rom [][]int, ram []int) string {
	t.Helper()

	doc := map[string]any{"rom": rom}
	if ram != nil {
		doc["ram"] = ram
	}
	data, err := json.Marshal(doc)
	assert.NoError(t, err)

	path := filepath.Join(dir, "memory.json")
	assert.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func emptyROM() [][]int {
	rom := make([][]int, memory.PageCount)
	for i := range rom {
		rom[i] = make([]int, memory.PageSize)
	}
	return rom
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	rom := emptyROM()
	rom[5][0] = 7

	opts := options.Program{
		Input:  writeMemoryFile(t, dir, rom, nil),
		Output: filepath.Join(dir, "out.schem"),
		Verify: true,
	}

	logger := log.NewTestLogger(t)
	assert.NoError(t, ProcessFile(context.Background(), logger, opts))

	info, err := os.Stat(opts.Output)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestProcessFileDeterministic(t *testing.T) {
	dir := t.TempDir()
	rom := emptyROM()
	for i := range rom[4] {
		rom[4][i] = i % 16
	}
	rom[1][10] = 9
	input := writeMemoryFile(t, dir, rom, nil)

	logger := log.NewTestLogger(t)

	first := filepath.Join(dir, "first.schem")
	second := filepath.Join(dir, "second.schem")
	assert.NoError(t, ProcessFile(context.Background(), logger,
		options.Program{Input: input, Output: first}))
	assert.NoError(t, ProcessFile(context.Background(), logger,
		options.Program{Input: input, Output: second}))

	a, err := os.ReadFile(first)
	assert.NoError(t, err)
	b, err := os.ReadFile(second)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestProcessFileInvalidInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"rom": []}`), 0o644))

	opts := options.Program{
		Input:  path,
		Output: filepath.Join(dir, "out.schem"),
	}

	logger := log.NewTestLogger(t)
	err := ProcessFile(context.Background(), logger, opts)
	assert.Error(t, err)

	var shapeErr *memory.ShapeError
	assert.True(t, errors.As(err, &shapeErr))

	// a failing validation must not leave an output file behind
	_, err = os.Stat(opts.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessFileLayoutOverride(t *testing.T) {
	dir := t.TempDir()
	rom := emptyROM()
	rom[4][0] = 1
	input := writeMemoryFile(t, dir, rom, nil)

	layout := filepath.Join(dir, "layout.yaml")
	assert.NoError(t, os.WriteFile(layout, []byte("data_version: 3120\n"), 0o644))

	logger := log.NewTestLogger(t)

	plain := filepath.Join(dir, "plain.schem")
	overridden := filepath.Join(dir, "overridden.schem")
	assert.NoError(t, ProcessFile(context.Background(), logger,
		options.Program{Input: input, Output: plain}))
	assert.NoError(t, ProcessFile(context.Background(), logger,
		options.Program{Input: input, Output: overridden, Layout: layout}))

	a, err := os.ReadFile(plain)
	assert.NoError(t, err)
	b, err := os.ReadFile(overridden)
	assert.NoError(t, err)
	assert.False(t, bytes.Equal(a, b))
}

func TestCheckBufferEqual(t *testing.T) {
	assert.NoError(t, checkBufferEqual([]byte{1, 2, 3}, []byte{1, 2, 3}))
	assert.Error(t, checkBufferEqual([]byte{1, 2}, []byte{1, 2, 3}))
	assert.Error(t, checkBufferEqual([]byte{1, 2, 3}, []byte{1, 9, 3}))
}
