// Package flow implements the Flow→Shortcode converter (C2): it streams
// NX inline XML (paragraphs, emphasis, spans, comments, notes) and emits
// Y7 shortcode text.
//
// It is built as an encoding/xml.Decoder token loop with handler state
// held in a plain struct rather than a single struct-tag decode, since
// the output shortcode depends on element order and nesting rather than
// on a fixed field layout.
package flow
