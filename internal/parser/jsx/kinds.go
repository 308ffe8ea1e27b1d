package jsx

// Syntax node kinds of the tree-sitter JavaScript grammar used when
// recognizing components and JSX.
const (
	KindProgram             = "program"
	KindExportStatement     = "export_statement"
	KindFunctionDeclaration = "function_declaration"
	KindFunctionExpression  = "function_expression"
	KindStatementBlock      = "statement_block"
	KindReturnStatement     = "return_statement"
	KindParenthesized       = "parenthesized_expression"
	KindComment             = "comment"

	KindElement            = "jsx_element"
	KindSelfClosingElement = "jsx_self_closing_element"
	KindOpeningElement     = "jsx_opening_element"
	KindClosingElement     = "jsx_closing_element"
	KindAttribute          = "jsx_attribute"
	KindExpression         = "jsx_expression"
	KindText               = "jsx_text"
	KindCharacterReference = "html_character_reference"
	KindSpreadElement      = "spread_element"

	// KindFunction is the pre-0.21 grammar name for function expressions.
	KindFunction = "function"
)

// IsElement reports whether kind is a JSX element or self-closing element.
func IsElement(kind string) bool {
	return kind == KindElement || kind == KindSelfClosingElement
}
