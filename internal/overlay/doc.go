// Package overlay turns a template tree and live metrics into the markup
// string shown by the on-screen display.
//
// # Templates
//
// A Template is a preamble of helper markup plus a tree of Entry values.
// Each Entry carries literal text with {NAME} placeholders, optional
// Include/Exclude mode filters, and ordered children joined by a separator.
// Any other bracketed markup (<C4>, <FR>, <A0>, ...) is opaque to this
// package and passes through untouched.
//
// # Evaluation
//
// Entry.Evaluate walks the tree for one Mode:
//
//  1. Hidden entries (Exclude wins over Include) produce nothing and their
//     children are never visited.
//  2. Placeholders resolve through a metrics.Source. Missing values become
//     "-", or blank the entry's own text when IgnoreMissing is set.
//  3. An entry that declares children but gets no output from any of them
//     collapses completely, label included.
//  4. Empty output counts as no output.
//
// Templates are built once (Default, or DecodeTemplate for YAML layouts) and
// never mutated, so rendering needs no locking.
package overlay
