package shortcode

import (
	"regexp"
	"strings"
)

var (
	rtfBreakTag = "<RTFBRK>"
	rawBracket  = regexp.MustCompile(`\[/?[hcrsu]\d*\]`)
)

// rawCodeSpans are the balanced raw-code tags stripped with their inner
// content: <HTM ...>...</HTM>, <TEX ...>...</TEX>, and so on. Each entry's
// regexp matches the opening-tag-through-closing-tag span.
var rawCodeSpans = func() []*regexp.Regexp {
	tags := []string{"HTM", "TEX", "RTF", "epub", "mobi", "rtfimg"}
	res := make([]*regexp.Regexp, len(tags))
	for i, tag := range tags {
		res[i] = regexp.MustCompile(`<` + tag + ` .+?/` + tag + `>`)
	}
	return res
}()

// stripRawCode removes literal <RTFBRK>, [h|c|r|s|u]n? bracket tags, and
// balanced raw-code spans (HTM/TEX/RTF/epub/mobi/rtfimg) from text.
func stripRawCode(text string) string {
	text = strings.ReplaceAll(text, rtfBreakTag, "")
	text = rawBracket.ReplaceAllString(text, "")
	for _, re := range rawCodeSpans {
		text = re.ReplaceAllString(text, "")
	}
	return text
}
