package shortcode

import (
	"strings"
	"time"
)

// Converter turns a Y7 scene body written in bracket shortcode into NX
// inline XML. A Converter carries the set of languages known to the
// document (so [lang=xx] spans round-trip against sections that don't
// mention a language) and per-document counters for notes; create one
// per document rather than sharing it across conversions.
type Converter struct {
	// Languages lists the language codes the document already knows
	// about, in addition to any discovered by DiscoverLanguages.
	Languages []string

	// AuthorName is used as the <creator> of any converted comment.
	AuthorName string

	// Now returns the current time for comment timestamps. Defaults to
	// time.Now when nil.
	Now func() time.Time

	noteCounter int
	noteNumber  int
}

func (c *Converter) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// pair is an ordered shortcode-opening/closing tag and its NX replacement.
type pair struct {
	open, close       string
	xmlOpen, xmlClose string
}

func (c *Converter) substitutionTable() []pair {
	pairs := []pair{
		{"[i]", "[/i]", "<em>", "</em>"},
		{"[b]", "[/b]", "<strong>", "</strong>"},
	}
	for _, lang := range c.Languages {
		pairs = append(pairs, pair{
			"[lang=" + lang + "]", "[/lang=" + lang + "]",
			`<span xml:lang="` + lang + `">`, "</span>",
		})
	}
	return pairs
}

// ToFlow converts Y7 bracket shortcode to NX inline XML, following the
// same phase order regardless of input shape: strip raw-code spans,
// escape XML entities (so a literal ">" becomes the "&gt; " block-quote
// marker the later phases look for), close markup that runs across a
// line break, substitute bracket tags for element tags, substitute notes
// and comments, then wrap what's left into paragraphs.
func (c *Converter) ToFlow(text string) (string, error) {
	text = stripRawCode(text)

	langs := DiscoverLanguages(text)
	known := make(map[string]bool, len(c.Languages)+len(langs))
	for _, l := range c.Languages {
		known[l] = true
	}
	for _, l := range langs {
		if !known[l] {
			known[l] = true
			c.Languages = append(c.Languages, l)
		}
	}

	text = escapeEntities(text)
	text = closeAcrossLines(text, c.Languages)
	text = applySubstitutions(text, c.substitutionTable())
	text = c.convertNotes(text)
	text = c.convertComments(text)
	text = wrapParagraphs(text)

	return text, nil
}

// closeAcrossLines makes every opening shortcode tag on a line balanced
// by the end of that line: a tag still open when the line ends is closed
// at the line's end and reopened (after any literal "&gt; " block-quote
// prefix) at the start of the next line. Tags are tracked independently
// so "[b]...[i]...\n...[/i]...[/b]" closes and reopens both correctly.
func closeAcrossLines(text string, languages []string) string {
	tags := []string{"i", "b"}
	for _, lang := range languages {
		tags = append(tags, "lang="+lang)
	}

	lines := strings.Split(text, "\n")
	isOpen := make(map[string]bool, len(tags))

	for i, line := range lines {
		for _, tag := range tags {
			open, closeTag := "["+tag+"]", "[/"+tag+"]"

			if isOpen[tag] {
				const quotePrefix = "&gt; "
				if strings.HasPrefix(line, quotePrefix) {
					line = quotePrefix + open + line[len(quotePrefix):]
				} else {
					line = open + line
				}
				isOpen[tag] = false
			}

			for strings.Count(line, open) > strings.Count(line, closeTag) {
				line = line + closeTag
				isOpen[tag] = true
			}
			for strings.Count(line, closeTag) > strings.Count(line, open) {
				line = open + line
			}
			line = strings.ReplaceAll(line, open+closeTag, "")
		}
		lines[i] = line
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
}

func escapeEntities(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, "'", "&apos;")
	text = strings.ReplaceAll(text, `"`, "&quot;")
	return text
}

func applySubstitutions(text string, pairs []pair) string {
	for _, p := range pairs {
		text = strings.ReplaceAll(text, p.open, p.xmlOpen)
		text = strings.ReplaceAll(text, p.close, p.xmlClose)
	}
	return text
}

// wrapParagraphs splits on line breaks into <p> elements, promoting a
// line beginning with the block-quote prefix "&gt; " to
// <p style="quotations"> with the prefix removed. A blank line becomes an
// empty <p></p> rather than being dropped, so that C2 can reconstruct the
// blank line from that empty <p></p> element on the way back.
func wrapParagraphs(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		switch {
		case line == "":
			b.WriteString("<p></p>")
		case strings.HasPrefix(line, "&gt; "):
			b.WriteString(`<p style="quotations">`)
			b.WriteString(line[len("&gt; "):])
			b.WriteString("</p>")
		default:
			b.WriteString("<p>")
			b.WriteString(line)
			b.WriteString("</p>")
		}
	}
	return b.String()
}
