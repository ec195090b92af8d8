// Package xmlutil provides structural XML comparison helpers used by the
// codec's round-trip tests: two XML documents are "equal" if they have
// the same tags, attributes, and text once insignificant whitespace and
// attribute/child order (for a configurable set of elements) are ignored.
package xmlutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Difference describes a single structural mismatch found while
// comparing two XML documents.
type Difference struct {
	Path        string // slash-separated path, zero-based index per level, e.g. "YWRITER7/SCENES[6]/SCENE[2]"
	Type        string // "tag", "attribute", "text", "structure"
	Description string
	Expected    string
	Got         string
}

// CompareOptions controls how two documents are compared.
type CompareOptions struct {
	// SortElements lists element tag names whose children should be
	// sorted (by tag name) before comparison, for parents where child
	// order is not meaningful.
	SortElements []string

	// MaxDifferences caps how many differences are collected; 0 means
	// unlimited. Keeps a badly mismatched pair of documents from
	// producing an unreadable report.
	MaxDifferences int

	// IgnoreWhitespace trims text content before comparing it. Defaults
	// to true via DefaultCompareOptions.
	IgnoreWhitespace bool
}

// DefaultCompareOptions returns the options used by CompareXML.
func DefaultCompareOptions() *CompareOptions {
	return &CompareOptions{
		MaxDifferences:   200,
		IgnoreWhitespace: true,
	}
}

// CompareXML reports whether original and generated are structurally
// equivalent, returning nil if so or an error describing the first
// difference found.
func CompareXML(original, generated []byte) error {
	diffs, err := CompareXMLWithDetails(original, generated, DefaultCompareOptions())
	if err != nil {
		return err
	}
	if len(diffs) == 0 {
		return nil
	}
	d := diffs[0]
	return fmt.Errorf("%s: %s (expected %q, got %q)", d.Path, d.Description, d.Expected, d.Got)
}

// CompareXMLWithDetails compares original and generated and returns every
// difference found (up to opts.MaxDifferences), rather than stopping at
// the first one.
func CompareXMLWithDetails(original, generated []byte, opts *CompareOptions) ([]Difference, error) {
	if opts == nil {
		opts = DefaultCompareOptions()
	}

	origDoc := etree.NewDocument()
	if err := origDoc.ReadFromBytes(original); err != nil {
		return nil, fmt.Errorf("xmlutil: parse original: %w", err)
	}
	genDoc := etree.NewDocument()
	if err := genDoc.ReadFromBytes(generated); err != nil {
		return nil, fmt.Errorf("xmlutil: parse generated: %w", err)
	}

	origRoot, genRoot := origDoc.Root(), genDoc.Root()
	switch {
	case origRoot == nil && genRoot == nil:
		return nil, nil
	case origRoot == nil:
		return []Difference{{Path: "/", Type: "structure", Description: "original has no root element", Expected: "(none)", Got: genRoot.Tag}}, nil
	case genRoot == nil:
		return []Difference{{Path: "/", Type: "structure", Description: "generated has no root element", Expected: origRoot.Tag, Got: "(none)"}}, nil
	}

	var diffs []Difference
	compareElements(origRoot, genRoot, origRoot.Tag, &diffs, opts)
	return diffs, nil
}

func compareElements(orig, gen *etree.Element, path string, diffs *[]Difference, opts *CompareOptions) {
	if full(diffs, opts) {
		return
	}
	if orig.Tag != gen.Tag {
		*diffs = append(*diffs, Difference{Path: path, Type: "tag", Description: "tag name mismatch", Expected: orig.Tag, Got: gen.Tag})
		return
	}

	compareAttributes(orig, gen, path, diffs, opts)
	compareText(orig, gen, path, diffs, opts)
	compareChildren(orig, gen, path, diffs, opts)
}

func compareAttributes(orig, gen *etree.Element, path string, diffs *[]Difference, opts *CompareOptions) {
	origAttrs := attrMap(orig)
	genAttrs := attrMap(gen)

	for key, origVal := range origAttrs {
		if full(diffs, opts) {
			return
		}
		if genVal, ok := genAttrs[key]; !ok {
			*diffs = append(*diffs, Difference{Path: path, Type: "attribute", Description: fmt.Sprintf("attribute %q missing", key), Expected: origVal, Got: "(missing)"})
		} else if genVal != origVal {
			*diffs = append(*diffs, Difference{Path: path, Type: "attribute", Description: fmt.Sprintf("attribute %q differs", key), Expected: origVal, Got: genVal})
		}
	}
	for key, genVal := range genAttrs {
		if full(diffs, opts) {
			return
		}
		if _, ok := origAttrs[key]; !ok {
			*diffs = append(*diffs, Difference{Path: path, Type: "attribute", Description: fmt.Sprintf("unexpected attribute %q", key), Expected: "(none)", Got: genVal})
		}
	}
}

func attrMap(e *etree.Element) map[string]string {
	m := make(map[string]string, len(e.Attr))
	for _, a := range e.Attr {
		m[a.Key] = a.Value
	}
	return m
}

func compareText(orig, gen *etree.Element, path string, diffs *[]Difference, opts *CompareOptions) {
	if full(diffs, opts) {
		return
	}
	origText, genText := orig.Text(), gen.Text()
	if opts.IgnoreWhitespace {
		origText, genText = strings.TrimSpace(origText), strings.TrimSpace(genText)
	}
	if origText != genText {
		*diffs = append(*diffs, Difference{Path: path, Type: "text", Description: "text content differs", Expected: truncate(origText, 120), Got: truncate(genText, 120)})
	}
}

func compareChildren(orig, gen *etree.Element, path string, diffs *[]Difference, opts *CompareOptions) {
	if full(diffs, opts) {
		return
	}
	origKids, genKids := orig.ChildElements(), gen.ChildElements()
	if contains(opts.SortElements, orig.Tag) {
		sortByTag(origKids)
		sortByTag(genKids)
	}

	if len(origKids) != len(genKids) {
		*diffs = append(*diffs, Difference{
			Path: path, Type: "structure", Description: "child element count mismatch",
			Expected: fmt.Sprintf("%d children", len(origKids)),
			Got:      fmt.Sprintf("%d children", len(genKids)),
		})
	}

	n := len(origKids)
	if len(genKids) < n {
		n = len(genKids)
	}
	for i := 0; i < n; i++ {
		if full(diffs, opts) {
			return
		}
		childPath := fmt.Sprintf("%s/%s[%d]", path, origKids[i].Tag, i)
		compareElements(origKids[i], genKids[i], childPath, diffs, opts)
	}
}

// NormalizeXML reparses and re-indents data for readable diffing.
func NormalizeXML(data []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmlutil: parse: %w", err)
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

func full(diffs *[]Difference, opts *CompareOptions) bool {
	return opts.MaxDifferences > 0 && len(*diffs) >= opts.MaxDifferences
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortByTag(elems []*etree.Element) {
	sort.Slice(elems, func(i, j int) bool { return elems[i].Tag < elems[j].Tag })
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// FormatDifferences renders diffs as a human-readable report.
func FormatDifferences(diffs []Difference) string {
	if len(diffs) == 0 {
		return "no differences found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "found %d difference(s):\n", len(diffs))
	for i, d := range diffs {
		fmt.Fprintf(&b, "%d. %s [%s]: %s (expected %q, got %q)\n", i+1, d.Path, d.Type, d.Description, d.Expected, d.Got)
	}
	return b.String()
}
