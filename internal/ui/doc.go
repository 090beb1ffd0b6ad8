// Package ui provides styled terminal output for the osd CLI.
//
// # Components Overview
//
//	Status lines  - Success / Warn / Fail lines with a leading symbol
//	Tables        - Non-interactive tables built on bubbles/table
//	Color mode    - auto / always / never, applied to lipgloss globally
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings
//	ColorMuted     (gray)   - Secondary text
//
// Use SetColorMode("never") to switch to monochrome output (for --no-color).
package ui
