// Package cellref converts between zero-based grid coordinates and the
// human-readable cell references used inside cell expressions ("a1", "e7"),
// and extracts those references from expression text.
//
// A reference is a single ASCII letter followed by a 1-based row number.
// Letters are case-insensitive and map to columns 0 through 25, so the
// addressable grid is 26 columns wide:
//
//	"a1"  -> {Row: 0,  Column: 0}
//	"e7"  -> {Row: 6,  Column: 4}
//	"u14" -> {Row: 13, Column: 20}
package cellref
