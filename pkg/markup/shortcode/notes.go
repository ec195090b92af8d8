package shortcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	noteRe    = regexp.MustCompile(`/\* *@(fn\*?|en\*?) (.*?)\*/`)
	commentRe = regexp.MustCompile(`/\*(.*?)\*/`)
)

// convertNotes replaces /* @fn ... */ and /* @en ... */ spans with
// <note> elements. The footnote counter (id suffix) advances on every
// match; the running note number advances on every match except a
// starred footnote, which emits "*" instead and leaves the number where
// it was for the next non-starred footnote.
func (c *Converter) convertNotes(text string) string {
	return noteRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := noteRe.FindStringSubmatch(m)
		noteType, content := sub[1], sub[2]

		c.noteCounter++
		c.noteNumber++
		label := strconv.Itoa(c.noteNumber)

		var class string
		switch {
		case strings.HasPrefix(noteType, "fn"):
			class = "footnote"
			if strings.HasSuffix(noteType, "*") {
				c.noteNumber--
				label = "*"
			}
		case strings.HasPrefix(noteType, "en"):
			class = "endnote"
		}

		return fmt.Sprintf(
			`<note id="ftn%d" class="%s"><note-citation>%s</note-citation><p>%s</p></note>`,
			c.noteCounter, class, label, content,
		)
	})
}

// convertComments replaces any remaining /* ... */ span (i.e. one that
// did not match the note pattern) with a <comment> element.
func (c *Converter) convertComments(text string) string {
	return commentRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := commentRe.FindStringSubmatch(m)
		content := sub[1]

		creator := c.AuthorName
		if creator == "" {
			creator = "unknown"
		}

		return fmt.Sprintf(
			`<comment><creator>%s</creator><date>%s</date><p>%s</p></comment>`,
			creator, c.now().Format("2006-01-02T15:04:05"), content,
		)
	})
}
