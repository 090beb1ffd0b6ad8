// Package preview implements a terminal preview of the overlay.
//
// The preview samples metrics on a fixed interval, renders the active
// template for the current mode and shows the result between a header and
// a footer. It follows the Bubble Tea Model-Update-View pattern:
//
//  1. tickMsg fires at the configured interval
//  2. sampleCmd() calls the Sampler and returns a sampleMsg
//  3. Update stores the snapshot and re-renders the overlay text
//  4. View draws header, overlay body and footer
//
// # Keyboard Shortcuts
//
//	m           - Cycle mode (fps, minimal, detail, all)
//	p           - Toggle raw markup / plain text
//	r           - Sample now
//	?           - Toggle help overlay
//	q, Ctrl+C   - Quit
package preview
