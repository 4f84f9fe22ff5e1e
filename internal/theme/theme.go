// Package theme tracks the named color themes a note can carry. The color
// tables and CSS application live in the web client; the server only needs
// the names for random assignment at creation and for validating updates.
package theme

import "math/rand/v2"

// DefaultName is the theme applied before a note has loaded.
const DefaultName = "default"

var names = []string{
	DefaultName,
	"bubblegum",
	"caffeine",
	"candyland",
	"lavender-dream",
	"midnight",
	"mocha",
	"notebook",
	"ocean-breeze",
	"sunset-glow",
	"tangerine",
}

// Palette selects random theme names for newly created notes.
type Palette struct {
	intn func(n int) int
}

// PaletteConfig describes the optional dependencies of a Palette.
type PaletteConfig struct {
	// IntN returns a uniform random integer in [0, n). Defaults to
	// math/rand/v2.
	IntN func(n int) int
}

// NewPalette constructs a theme palette.
func NewPalette(cfg PaletteConfig) *Palette {
	intn := cfg.IntN
	if intn == nil {
		intn = rand.IntN
	}
	return &Palette{intn: intn}
}

// Random returns a uniformly chosen theme name.
func (p *Palette) Random() string {
	return names[p.intn(len(names))]
}

// Known reports whether the provided name is part of the palette.
func Known(name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// Names returns the palette contents in declaration order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
