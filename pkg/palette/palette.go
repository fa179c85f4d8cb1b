// Package palette loads TOML palette files: explicit colour overrides per
// node ID, plus optional overrides for the layout's mutation magnitude and
// seed. Palettes let a caller pin the colour of selected subtrees while the
// rest of the tree keeps inheriting perturbed family colours.
//
// A palette file looks like:
//
//	mutation = 0.35
//	seed = 7
//
//	[colors]
//	"europe" = "#4878a8"
//	"asia"   = "#a85948"
package palette

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/tessellaviz/tessella/pkg/errors"
	"github.com/tessellaviz/tessella/pkg/layout"
	"github.com/tessellaviz/tessella/pkg/treemap"
)

// Palette is a parsed palette file.
type Palette struct {
	// Mutation overrides the layout's mutation magnitude when set.
	Mutation *float64 `toml:"mutation"`

	// Seed overrides the layout's random seed when set.
	Seed *uint64 `toml:"seed"`

	// Colors maps node IDs to explicit "#rrggbb" overrides.
	Colors map[string]string `toml:"colors"`
}

// Load reads and validates a palette file.
func Load(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates palette TOML.
func Parse(data []byte) (Palette, error) {
	var p Palette
	if err := toml.Unmarshal(data, &p); err != nil {
		return Palette{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "parse palette")
	}
	for id, hex := range p.Colors {
		if _, err := treemap.ParseHex(hex); err != nil {
			return Palette{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "palette entry %q", id)
		}
	}
	return p, nil
}

// Apply writes the palette's overrides into the layout. Colour entries for
// node IDs the layout does not contain are ignored and reported back so
// callers can warn about stale palettes.
func (p Palette) Apply(l *layout.Layout) (unmatched []string) {
	if p.Mutation != nil {
		l.Mutation = *p.Mutation
	}
	if p.Seed != nil {
		l.Seed = *p.Seed
	}
	if len(p.Colors) == 0 {
		return nil
	}

	index := make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		index[n.ID] = i
	}
	for id, hex := range p.Colors {
		i, ok := index[id]
		if !ok {
			unmatched = append(unmatched, id)
			continue
		}
		l.Nodes[i].Color = hex
	}
	return unmatched
}
