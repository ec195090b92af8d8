package y7

import (
	"os"
	"strings"

	"github.com/inkbound/novelbridge/pkg/common"
)

// cdataTags is the set of element names the legacy tool always wraps in a
// CDATA section. The original enumeration concatenates 'Conflict' and
// 'Field_ChapterHeadingPrefix' with a missing comma; they are listed here
// as the two separate entries that concatenation was presumably meant to
// produce.
var cdataTags = []string{
	"Title", "AuthorName", "Bio", "Desc",
	"FieldTitle1", "FieldTitle2", "FieldTitle3", "FieldTitle4",
	"LaTeXHeaderFile", "Tags", "AKA", "ImageFile", "FullName", "Goals",
	"Notes", "RTFFile", "SceneContent", "Outcome", "Goal", "Conflict",
	"Field_ChapterHeadingPrefix", "Field_ChapterHeadingSuffix",
	"Field_PartHeadingPrefix", "Field_PartHeadingSuffix",
	"Field_CustomGoal", "Field_CustomConflict", "Field_CustomOutcome",
	"Field_CustomChrBio", "Field_CustomChrGoals", "Field_ArcDefinition",
	"Field_SceneArcs", "Field_CustomAR",
}

// postprocess turns the generic XML tree that xml.MarshalIndent produced
// into the schema-conformant Y7 document: prepend the declaration, wrap
// the CDATA-set element bodies, normalize the whitespace that wrapping
// introduces, widen a self-closing <CHAPTERS/> to a non-self-closing
// form (the legacy parser rejects the self-closed spelling), and finally
// entity-unescape the whole text (the legacy tool stores raw reserved
// characters inside its CDATA sections).
func postprocess(body string) string {
	text := body
	for _, tag := range cdataTags {
		text = strings.ReplaceAll(text, "<"+tag+">", "<"+tag+"><![CDATA[")
		text = strings.ReplaceAll(text, "</"+tag+">", "]]></"+tag+">")
	}

	text = strings.ReplaceAll(text, "[CDATA[ \n", "[CDATA[")
	text = strings.ReplaceAll(text, "[CDATA[\n", "[CDATA[")
	text = strings.ReplaceAll(text, "\n]]", "]]")

	text = strings.ReplaceAll(text, "<CHAPTERS/>", "<CHAPTERS></CHAPTERS>")

	text = unescapeXMLEntities(text)

	return `<?xml version="1.0" encoding="utf-8"?>` + "\n" + text
}

// unescapeXMLEntities reverses the five predefined XML entities and the
// numeric references encoding/xml writes for quotes, tab, newline and
// carriage return, matching the legacy tool's habit of storing raw
// characters inside CDATA rather than the entity-escaped form
// encoding/xml always produces.
// &amp; is unescaped last so an entity that was itself escaped (e.g. a
// literal "&lt;" the source text meant to keep) does not get double
// unescaped into a bare "<".
func unescapeXMLEntities(s string) string {
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&#34;", `"`)
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#x9;", "\t")
	s = strings.ReplaceAll(s, "&#xA;", "\n")
	s = strings.ReplaceAll(s, "&#xD;", "\r")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}

// atomicWrite renames any existing file at path to path+".bak", writes
// data to path, and removes the backup on success. A failure to rename
// the original aside is reported as ErrOverwriteFailure; a failure to
// write the replacement, with the backup restored, is reported as
// ErrWriteFailure. The two are distinct sentinels because the legacy
// tool itself raises two different caller-visible messages for them.
func atomicWrite(path string, data string) error {
	hadOriginal := false
	if _, err := os.Stat(path); err == nil {
		hadOriginal = true
		if err := os.Rename(path, path+".bak"); err != nil {
			return common.WrapErrorWithPath("y7", "Write", path, ErrOverwriteFailure)
		}
	}

	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		if hadOriginal {
			os.Rename(path+".bak", path)
		}
		return common.WrapErrorWithPath("y7", "Write", path, ErrWriteFailure)
	}

	if hadOriginal {
		os.Remove(path + ".bak")
	}
	return nil
}
