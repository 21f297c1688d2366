package config

import (
	"fmt"
	"os"

	"github.com/retroenv/memschem/internal/geom"
	"github.com/retroenv/memschem/internal/options"
	"gopkg.in/yaml.v3"
)

// Layout holds optional overrides for the schematic layout. Absent values
// keep the defaults of the machine the generator was built for.
type Layout struct {
	DataVersion int32   `yaml:"data_version"`
	RAMOrigin   []int16 `yaml:"ram_origin"`
}

// LoadLayout reads a layout configuration file.
func LoadLayout(path string) (Layout, error) {
	var layout Layout
	raw, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("reading layout file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return layout, fmt.Errorf("parsing layout file %s: %w", path, err)
	}
	if layout.RAMOrigin != nil && len(layout.RAMOrigin) != 3 {
		return layout, fmt.Errorf("layout file %s: ram_origin needs 3 components, got %d",
			path, len(layout.RAMOrigin))
	}
	return layout, nil
}

// Apply merges the overrides into generator options.
func (l Layout) Apply(opts *options.Generator) {
	if l.DataVersion != 0 {
		opts.DataVersion = l.DataVersion
	}
	if len(l.RAMOrigin) == 3 {
		opts.RAMOrigin = geom.V(l.RAMOrigin[0], l.RAMOrigin[1], l.RAMOrigin[2])
	}
}
