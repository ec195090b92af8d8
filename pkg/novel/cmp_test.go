package novel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDefaultServiceMakePlotPointDeepEquality exercises go-cmp against the
// allocated entities themselves, rather than just their scalar fields,
// useful once a maker starts filling in nested collections.
func TestDefaultServiceMakePlotPointDeepEquality(t *testing.T) {
	svc := DefaultService{}
	got := svc.MakePlotPoint("Inciting Incident", "Something happens.")
	want := &PlotPoint{BasicElement: BasicElement{Title: "Inciting Incident", Desc: "Something happens."}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MakePlotPoint() mismatch (-want +got):\n%s", diff)
	}
}

func TestKnownLanguagesDeepEquality(t *testing.T) {
	got := KnownLanguages([]string{"DE", "de", "FR"})
	want := []string{"de", "fr"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("KnownLanguages() mismatch (-want +got):\n%s", diff)
	}
}
