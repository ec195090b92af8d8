// Package fixer implements the malformed-markup repair pass (C1): it
// normalizes overlapping or unbalanced inline format tags in a character
// stream without disturbing anything else in it.
//
// It is event-driven: the "tokens" are a small hand-rolled scan over
// `<tag>`/`</tag>`/text rather than encoding/xml, because the input is
// not required to be well-formed XML going in (that is the whole point
// of the fixer).
package fixer

import (
	"strings"
)

// DefaultFormatTags is the default configured set of tags the Fixer
// balances. Every other tag passes through untouched.
var DefaultFormatTags = map[string]bool{
	"em":     true,
	"strong": true,
}

// Fixer repairs overlapping/unbalanced tags drawn from a configurable set.
type Fixer struct {
	formatTags map[string]bool
}

// New returns a Fixer that balances tags, defaulting to {em, strong} when
// tags is empty.
func New(tags ...string) *Fixer {
	f := &Fixer{formatTags: make(map[string]bool)}
	if len(tags) == 0 {
		for t := range DefaultFormatTags {
			f.formatTags[t] = true
		}
	} else {
		for _, t := range tags {
			f.formatTags[t] = true
		}
	}
	return f
}

// Fix balances the configured format tags in xmlText and returns the
// repaired stream. Non-format tags and their attributes pass through
// untouched; character data is re-escaped as XML entities.
func (f *Fixer) Fix(xmlText string) string {
	var out strings.Builder
	var stack []string

	toks := tokenize(xmlText)
	for _, tok := range toks {
		switch tok.kind {
		case tokText:
			out.WriteString(escapeText(tok.text))

		case tokStartTag:
			if f.formatTags[tok.name] {
				if contains(stack, tok.name) {
					// Already open: silent dedup, drop the tag entirely.
					continue
				}
				stack = append(stack, tok.name)
				out.WriteString("<" + tok.name + ">")
				continue
			}
			out.WriteString("<" + tok.name + tok.attrText + ">")

		case tokEndTag:
			if f.formatTags[tok.name] {
				if !contains(stack, tok.name) {
					// Not open: drop.
					continue
				}
				// Pop down to and including tok.name, emitting a synthetic
				// closer for each intermediate format tag. Intermediates
				// are forgotten, not reopened: their own closing tag, when
				// it arrives later in the stream, finds them no longer on
				// the stack and is dropped (see the not-on-stack branch
				// above). This is what makes one of an overlapping pair
				// close before the other opens instead of nesting wrong.
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					out.WriteString("</" + top + ">")
					if top == tok.name {
						break
					}
				}
				continue
			}
			out.WriteString("</" + tok.name + ">")

		case tokSelfClose:
			out.WriteString("<" + tok.name + tok.attrText + "/>")
		}
	}

	// Close anything still open at end of stream.
	for i := len(stack) - 1; i >= 0; i-- {
		out.WriteString("</" + stack[i] + ">")
	}

	// Removing one empty region can leave its parent empty, so repeat
	// until nothing changes.
	result := out.String()
	for {
		prev := result
		result = strings.ReplaceAll(result, "<strong></strong>", "")
		result = strings.ReplaceAll(result, "<em></em>", "")
		if result == prev {
			return result
		}
	}
}

func contains(stack []string, name string) bool {
	for _, s := range stack {
		if s == name {
			return true
		}
	}
	return false
}
