package schematic

import (
	"fmt"
	"sort"
	"strings"
)

// Property is a single block state property.
type Property struct {
	Name  string
	Value string
}

// Block is a namespaced block ID with an optional set of state properties.
// Properties are kept sorted by name so that equal block states always render
// to the same palette key.
type Block struct {
	id         string
	properties []Property
}

// ParseBlock parses a block state string of the form
// "minecraft:barrel[facing=up,open=false]". The property list is optional.
func ParseBlock(s string) (Block, error) {
	id, propertyPart, hasProperties := strings.Cut(s, "[")
	if id == "" {
		return Block{}, fmt.Errorf("block state %q has an empty ID", s)
	}
	if !hasProperties {
		return Block{id: id}, nil
	}
	if !strings.HasSuffix(propertyPart, "]") {
		return Block{}, fmt.Errorf("block state %q misses the closing bracket", s)
	}
	propertyPart = strings.TrimSuffix(propertyPart, "]")

	var properties []Property
	for _, property := range strings.Split(propertyPart, ",") {
		name, value, ok := strings.Cut(property, "=")
		if !ok || name == "" || value == "" {
			return Block{}, fmt.Errorf("block state %q has an invalid property %q", s, property)
		}
		properties = append(properties, Property{Name: name, Value: value})
	}
	sort.Slice(properties, func(i, j int) bool {
		return properties[i].Name < properties[j].Name
	})

	return Block{id: id, properties: properties}, nil
}

// MustBlock parses a block state string and panics on error.
// It is intended for fixed block state literals.
func MustBlock(s string) Block {
	b, err := ParseBlock(s)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns the canonical block state string with sorted properties.
func (b Block) String() string {
	if len(b.properties) == 0 {
		return b.id
	}

	sb := &strings.Builder{}
	sb.WriteString(b.id)
	sb.WriteByte('[')
	for i, property := range b.properties {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(property.Name)
		sb.WriteByte('=')
		sb.WriteString(property.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}

// IsZero reports whether the block is the zero value.
func (b Block) IsZero() bool {
	return b.id == ""
}
