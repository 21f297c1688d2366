package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// json decodes []uint8 from base64 strings, so the raw representation uses
// plain ints and converts after validation.
type rawMemory struct {
	ROM [][]int `json:"rom"`
	RAM []int   `json:"ram"`
}

// Load reads and validates a JSON memory document. In strict mode the
// document has to carry the exact memory shape, otherwise short ROM pages
// and a missing or short RAM block are zero-padded.
// All shape violations surface as *ShapeError.
func Load(r io.Reader, strict bool) (*Memory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading memory document: %w", err)
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, &ShapeError{Err: err}
	}

	schema := lenientSchema
	if strict {
		schema = strictSchema
	}
	if err := schema.Validate(document); err != nil {
		return nil, &ShapeError{Err: err}
	}

	// the document shape is verified, a second unmarshal into the typed
	// representation cannot fail anymore
	var raw rawMemory
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ShapeError{Err: err}
	}

	mem := &Memory{}
	for page, cells := range raw.ROM {
		for cell, value := range cells {
			mem.ROM[page][cell] = uint8(value)
		}
	}
	for addr, value := range raw.RAM {
		mem.RAM[addr] = uint16(value)
	}
	return mem, nil
}

// LoadFile loads and validates the memory document at the given path.
func LoadFile(path string, strict bool) (*Memory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	mem, err := Load(file, strict)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}
	return mem, nil
}
