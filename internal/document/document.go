package document

import (
	"encoding/json"
	"reflect"
)

const (
	// TypeDoc is the root node type of every well-formed document.
	TypeDoc = "doc"
	// TypeParagraph is the block type used for plain text content.
	TypeParagraph = "paragraph"
	// TypeHeading is the block type used for headings.
	TypeHeading = "heading"
)

// Mark annotates a text node with inline formatting.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is one node of the rich-text document tree. A node optionally holds
// text, child nodes, formatting marks, and attributes.
type Node struct {
	Type    string         `json:"type"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Empty returns the canonical empty document: a doc containing one empty
// paragraph. New notes are created with this content.
func Empty() Node {
	return Node{
		Type:    TypeDoc,
		Content: []Node{{Type: TypeParagraph, Content: []Node{}}},
	}
}

// Decode parses a JSON-encoded document tree.
func Decode(raw []byte) (Node, error) {
	var node Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return Node{}, err
	}
	return node, nil
}

// Encode serializes the document tree to JSON.
func Encode(node Node) ([]byte, error) {
	return json.Marshal(node)
}

// Equal reports deep structural equality between two document trees. Editor
// documents are freshly constructed on every edit, so identity comparison is
// never meaningful; nil and empty child slices compare equal.
func Equal(a, b Node) bool {
	if a.Type != b.Type || a.Text != b.Text {
		return false
	}
	if len(a.Content) != len(b.Content) || len(a.Marks) != len(b.Marks) {
		return false
	}
	for i := range a.Content {
		if !Equal(a.Content[i], b.Content[i]) {
			return false
		}
	}
	for i := range a.Marks {
		if a.Marks[i].Type != b.Marks[i].Type {
			return false
		}
		if !attrsEqual(a.Marks[i].Attrs, b.Marks[i].Attrs) {
			return false
		}
	}
	return attrsEqual(a.Attrs, b.Attrs)
}

func attrsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
