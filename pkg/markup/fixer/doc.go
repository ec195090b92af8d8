// Package fixer repairs overlapping or unbalanced inline format tags
// (by default <em> and <strong>) in an otherwise mostly-well-formed XML
// character stream, without disturbing any other content.
package fixer
