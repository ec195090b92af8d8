// Package shortcode implements the Shortcode→Flow converter (C3): a
// deterministic, idempotent string-transformation pipeline that turns a
// Y7 scene body (bracket shortcode, comments, footnotes/endnotes) into
// NX inline XML.
//
// Per-document mutable state (the footnote counter and the running note
// number) lives in a Converter value created fresh for each document
// rather than in process-wide globals, so concurrent conversions never
// share counters.
package shortcode
