// Package slug generates two-word human-memorable note identifiers.
package slug

import "math/rand/v2"

// Generator produces memorable descriptor-animal identifiers such as
// "happy-otter". Generated values are not checked for uniqueness; the
// vocabulary sizes keep the collision probability acceptably low.
type Generator struct {
	intn func(n int) int
}

// GeneratorConfig describes the optional dependencies of a Generator.
type GeneratorConfig struct {
	// IntN returns a uniform random integer in [0, n). Defaults to
	// math/rand/v2.
	IntN func(n int) int
}

// NewGenerator constructs a slug generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	intn := cfg.IntN
	if intn == nil {
		intn = rand.IntN
	}
	return &Generator{intn: intn}
}

// Generate returns a fresh descriptor-animal slug.
func (g *Generator) Generate() string {
	descriptor := descriptors[g.intn(len(descriptors))]
	animal := animals[g.intn(len(animals))]
	return descriptor + "-" + animal
}
