// Package cli implements the osd command-line interface.
//
// Each Cobra command is a thin wrapper that parses flags and calls an
// exported function (Render, Watch, Init) or a small helper that writes to
// an io.Writer, so the behavior can be tested without a process.
//
// # Command Structure
//
//	osd render              - Print the overlay once
//	osd watch               - Live terminal preview
//	osd modes               - List overlay modes
//	osd layout dump         - Print the active layout as YAML
//	osd layout check <file> - Validate a layout
//	osd layout vars [file]  - List placeholders
//	osd init                - Create .osd.yaml
//	osd version             - Print version information
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) are defined on the root
// command and available to all subcommands. Settings resolve as: command
// flag, then config file (or OSD_* environment), then built-in default.
package cli
