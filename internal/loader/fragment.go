package loader

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Extract returns source[start:end] with both offsets clamped to the
// source. An inverted span is empty.
func Extract(source string, start, end int) string {
	start = max(0, min(start, len(source)))
	end = max(0, min(end, len(source)))
	if end <= start {
		return ""
	}
	return source[start:end]
}

// ExtractNode returns the source text spanned by node. A nil node is an
// empty span.
func ExtractNode(source string, node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return Extract(source, int(node.StartByte()), int(node.EndByte()))
}
