package memory

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The strict schema requires the exact memory shape. The lenient schema
// allows short ROM pages and a missing or short RAM block, which the loader
// zero-pads; everything else stays rejected, in particular unknown keys,
// a wrong page count and out of range cell values.

const strictSchemaJSON = `{
	"type": "object",
	"required": ["rom", "ram"],
	"additionalProperties": false,
	"properties": {
		"rom": {
			"type": "array",
			"minItems": 16,
			"maxItems": 16,
			"items": {
				"type": "array",
				"minItems": 256,
				"maxItems": 256,
				"items": {"type": "integer", "minimum": 0, "maximum": 15}
			}
		},
		"ram": {
			"type": "array",
			"minItems": 4096,
			"maxItems": 4096,
			"items": {"type": "integer", "minimum": 0, "maximum": 65535}
		}
	}
}`

const lenientSchemaJSON = `{
	"type": "object",
	"required": ["rom"],
	"additionalProperties": false,
	"properties": {
		"rom": {
			"type": "array",
			"minItems": 16,
			"maxItems": 16,
			"items": {
				"type": "array",
				"maxItems": 256,
				"items": {"type": "integer", "minimum": 0, "maximum": 15}
			}
		},
		"ram": {
			"type": "array",
			"maxItems": 4096,
			"items": {"type": "integer", "minimum": 0, "maximum": 65535}
		}
	}
}`

var (
	strictSchema  = jsonschema.MustCompileString("memory-strict.schema.json", strictSchemaJSON)
	lenientSchema = jsonschema.MustCompileString("memory.schema.json", lenientSchemaJSON)
)

// ShapeError reports a memory document that does not match the required shape.
type ShapeError struct {
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid memory image: %s", e.Err)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
