package document

import (
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength       = 60
	maxDescriptionLength = 160
	defaultDescription   = "A note created with Slugpad - fast, simple note taking."
)

// ExtractText flattens the document tree into plain text, joining node texts
// with single spaces.
func ExtractText(node Node) string {
	var builder strings.Builder
	appendText(&builder, node)
	return strings.TrimSpace(builder.String())
}

func appendText(builder *strings.Builder, node Node) {
	if node.Text != "" {
		if builder.Len() > 0 && !strings.HasSuffix(builder.String(), " ") {
			builder.WriteByte(' ')
		}
		builder.WriteString(node.Text)
	}
	for _, child := range node.Content {
		appendText(builder, child)
	}
}

// ExtractTitle returns the text of the first non-empty heading or paragraph,
// truncated to 60 characters with an ellipsis. Returns "" for a document with
// no textual block.
func ExtractTitle(node Node) string {
	for _, child := range node.Content {
		if child.Type != TypeHeading && child.Type != TypeParagraph {
			continue
		}
		text := ExtractText(child)
		if text == "" {
			continue
		}
		firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
		if firstLine == "" {
			continue
		}
		if utf8.RuneCountInString(firstLine) > maxTitleLength {
			runes := []rune(firstLine)
			return string(runes[:maxTitleLength-3]) + "..."
		}
		return firstLine
	}
	return ""
}

// Description builds a link-preview description from the document text,
// truncated at a word boundary to 160 characters. An empty document yields a
// generic fallback.
func Description(node Node) string {
	fullText := ExtractText(node)
	if fullText == "" {
		return defaultDescription
	}
	if utf8.RuneCountInString(fullText) <= maxDescriptionLength {
		return fullText
	}

	// Cut on a rune boundary; a byte slice could split a multibyte rune.
	truncated := string([]rune(fullText)[:maxDescriptionLength])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)*4/5 {
		return truncated[:lastSpace] + "..."
	}
	return truncated + "..."
}
