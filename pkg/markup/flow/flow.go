package flow

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/inkbound/novelbridge/pkg/common"
)

// noteShortcodes maps an NX <note class="..."> value to its shortcode
// marker. Unknown classes default to footnote, matching the reader's
// leniency on the way back in (pkg/markup/shortcode).
var noteShortcodes = map[string]string{
	"footnote": "@fn",
	"endnote":  "@en",
}

// ToShortcode converts NX inline XML (a section body, without an outer
// root element) into Y7 shortcode text. An empty input yields an empty
// string.
func ToShortcode(nx string) (string, error) {
	if strings.TrimSpace(nx) == "" {
		return "", nil
	}

	h := &handler{}
	decoder := xml.NewDecoder(strings.NewReader("<Content>" + nx + "</Content>"))
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", common.WrapError("flow", "decode", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			h.start(t)
		case xml.EndElement:
			h.end(t.Name.Local)
		case xml.CharData:
			h.text(string(t))
		}
	}
	return strings.Join(h.out, ""), nil
}

// handler carries per-conversion state: which paragraph/comment/span
// context is currently open. A fresh handler is created per call so no
// state leaks between documents.
type handler struct {
	out []string
	// pDepth counts nested open <p> elements. A <note>/<comment> carries
	// its own inner <p> (spec §3.3), so this must be a depth rather than
	// a flat flag: the inner paragraph's close must not clear the outer
	// paragraph's capture state.
	pDepth       int
	inSuppressed bool // inside <creator>/<date>/<note-citation>
	inComment    bool // inside <comment> or <note>
	spanClosers  []string
}

func (h *handler) emit(s string) { h.out = append(h.out, s) }

func (h *handler) start(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		h.pDepth++
		if attr(t, "style") == "quotations" {
			h.emit("> ")
		}
	case "em":
		h.emit("[i]")
	case "strong":
		h.emit("[b]")
	case "span":
		locale := attr(t, "lang")
		if locale == "" {
			return
		}
		h.spanClosers = append(h.spanClosers, "[/lang="+locale+"]")
		h.emit("[lang=" + locale + "]")
	case "comment", "note":
		h.inComment = true
		h.emit("/*")
		if t.Name.Local == "note" {
			class := attr(t, "class")
			if class == "" {
				class = "footnote"
			}
			marker, ok := noteShortcodes[class]
			if !ok {
				marker = "@fn"
			}
			h.emit(marker + " ")
		}
	case "creator", "date", "note-citation":
		h.inSuppressed = true
	}
}

func (h *handler) end(name string) {
	switch name {
	case "p":
		h.pDepth--
		if h.pDepth == 0 {
			for i := len(h.spanClosers) - 1; i >= 0; i-- {
				h.emit(h.spanClosers[i])
			}
			h.spanClosers = nil
		}
		if h.inComment {
			h.emit(" ")
		} else {
			h.emit("\n")
		}
	case "em":
		h.emit("[/i]")
	case "strong":
		h.emit("[/b]")
	case "span":
		if len(h.spanClosers) > 0 {
			last := h.spanClosers[len(h.spanClosers)-1]
			h.spanClosers = h.spanClosers[:len(h.spanClosers)-1]
			h.emit(last)
		}
	case "comment", "note":
		h.inComment = false
		h.emit("*/")
	case "creator", "date", "note-citation":
		h.inSuppressed = false
	}
}

func (h *handler) text(s string) {
	if h.pDepth > 0 && !h.inSuppressed {
		h.emit(s)
	}
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
