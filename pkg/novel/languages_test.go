package novel

import "testing"

func TestCanonicalLanguageTag(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"de", "de"},
		{"DE", "de"},
		{"en-us", "en-US"},
		{"not a valid tag!!", "not a valid tag!!"}, // unparsable: returned unchanged
	}
	for _, tt := range tests {
		if got := CanonicalLanguageTag(tt.in); got != tt.want {
			t.Errorf("CanonicalLanguageTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKnownLanguagesDedupesAndCanonicalizes(t *testing.T) {
	got := KnownLanguages([]string{"de", "DE", "fr", "", "de"})
	want := []string{"de", "fr"}
	if len(got) != len(want) {
		t.Fatalf("KnownLanguages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KnownLanguages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
