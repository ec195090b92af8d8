package xmlutil

import "testing"

func TestCompareXMLIdentical(t *testing.T) {
	a := `<root><child>value</child></root>`
	if err := CompareXML([]byte(a), []byte(a)); err != nil {
		t.Errorf("CompareXML() = %v, want nil", err)
	}
}

func TestCompareXMLIgnoresWhitespace(t *testing.T) {
	a := `<root><child>value</child></root>`
	b := "<root>\n  <child>value</child>\n</root>"
	if err := CompareXML([]byte(a), []byte(b)); err != nil {
		t.Errorf("CompareXML() = %v, want nil", err)
	}
}

func TestCompareXMLWithDetailsFindsDifferences(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		wantType string
	}{
		{"tag mismatch", `<root><a/></root>`, `<root><b/></root>`, "tag"},
		{"attribute value", `<root attr="1"/>`, `<root attr="2"/>`, "attribute"},
		{"missing attribute", `<root a="1" b="2"/>`, `<root a="1"/>`, "attribute"},
		{"text differs", `<root>a</root>`, `<root>b</root>`, "text"},
		{"child count", `<root><a/><a/></root>`, `<root><a/></root>`, "structure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, err := CompareXMLWithDetails([]byte(tt.a), []byte(tt.b), nil)
			if err != nil {
				t.Fatalf("CompareXMLWithDetails() error = %v", err)
			}
			if len(diffs) == 0 {
				t.Fatalf("expected at least one difference")
			}
			if diffs[0].Type != tt.wantType {
				t.Errorf("diffs[0].Type = %q, want %q", diffs[0].Type, tt.wantType)
			}
		})
	}
}

func TestCompareXMLWithDetailsSortsConfiguredElements(t *testing.T) {
	a := `<root><items><alpha/><beta/></items></root>`
	b := `<root><items><beta/><alpha/></items></root>`

	diffs, err := CompareXMLWithDetails([]byte(a), []byte(b), &CompareOptions{SortElements: []string{"items"}})
	if err != nil {
		t.Fatalf("CompareXMLWithDetails() error = %v", err)
	}
	if len(diffs) != 0 {
		t.Errorf("expected no differences after sorting, got %v", diffs)
	}
}

func TestFormatDifferencesEmpty(t *testing.T) {
	if got := FormatDifferences(nil); got != "no differences found" {
		t.Errorf("FormatDifferences(nil) = %q", got)
	}
}

func TestNormalizeXMLProducesParseableOutput(t *testing.T) {
	out, err := NormalizeXML([]byte(`<root>  <child>value</child>  </root>`))
	if err != nil {
		t.Fatalf("NormalizeXML() error = %v", err)
	}
	if err := CompareXML(out, []byte(`<root><child>value</child></root>`)); err != nil {
		t.Errorf("normalized form differs structurally: %v", err)
	}
}
