package slug

import (
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z]+-[a-z]+$`)

func TestGenerateProducesTwoWordLowercaseSlug(t *testing.T) {
	generator := NewGenerator(GeneratorConfig{})
	for i := 0; i < 100; i++ {
		value := generator.Generate()
		if !slugPattern.MatchString(value) {
			t.Fatalf("slug %q does not match word-word form", value)
		}
	}
}

func TestGenerateDrawsFromVocabularies(t *testing.T) {
	generator := NewGenerator(GeneratorConfig{})
	for i := 0; i < 100; i++ {
		value := generator.Generate()
		parts := strings.SplitN(value, "-", 2)
		if !contains(descriptors, parts[0]) {
			t.Fatalf("descriptor %q not in vocabulary", parts[0])
		}
		if !contains(animals, parts[1]) {
			t.Fatalf("animal %q not in vocabulary", parts[1])
		}
	}
}

func TestGenerateWithDeterministicSource(t *testing.T) {
	generator := NewGenerator(GeneratorConfig{IntN: func(n int) int { return 0 }})
	expected := descriptors[0] + "-" + animals[0]
	if value := generator.Generate(); value != expected {
		t.Fatalf("expected %q, got %q", expected, value)
	}
}

func contains(words []string, value string) bool {
	for _, word := range words {
		if word == value {
			return true
		}
	}
	return false
}
