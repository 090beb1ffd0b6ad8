package ui

// Unicode symbols for status lines.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarn    = "!"
	SymbolBullet  = "•"
)
