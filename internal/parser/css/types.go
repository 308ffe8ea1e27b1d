package css

// Declaration is one `property: value` pair of a declaration block
type Declaration struct {
	// Property is the property name as written
	Property string
	// Value is the declaration value without the trailing semicolon
	Value string
	// Vars lists the custom properties referenced through var(), in order
	Vars []string
}
