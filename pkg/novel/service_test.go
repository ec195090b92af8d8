package novel

import "testing"

func TestCreateIDStartsAtOne(t *testing.T) {
	if got := CreateID(nil, SectionPrefix); got != "sc1" {
		t.Errorf("CreateID(nil) = %q, want sc1", got)
	}
}

func TestCreateIDFillsFirstGap(t *testing.T) {
	existing := []string{"sc1", "sc3"}
	if got := CreateID(existing, SectionPrefix); got != "sc2" {
		t.Errorf("CreateID(%v) = %q, want sc2", existing, got)
	}
}

func TestCreateIDSkipsOtherPrefixes(t *testing.T) {
	existing := []string{"ch1", "pp1"}
	if got := CreateID(existing, SectionPrefix); got != "sc1" {
		t.Errorf("CreateID(%v) = %q, want sc1 (unrelated prefixes ignored)", existing, got)
	}
}

func TestCreateIDIgnoresNonNumericSuffix(t *testing.T) {
	existing := []string{"scX", "sc1"}
	if got := CreateID(existing, SectionPrefix); got != "sc2" {
		t.Errorf("CreateID(%v) = %q, want sc2", existing, got)
	}
}

func TestDefaultServiceMakers(t *testing.T) {
	svc := DefaultService{}

	if ch := svc.MakeChapter(); ch == nil {
		t.Error("MakeChapter() = nil")
	}
	if sec := svc.MakeSection(); sec == nil {
		t.Error("MakeSection() = nil")
	}
	if pl := svc.MakePlotLine(); pl == nil {
		t.Error("MakePlotLine() = nil")
	}
	if n := svc.MakeNovel(); n == nil || n.Tree == nil || n.Chapters == nil {
		t.Error("MakeNovel() did not return an initialized Novel")
	}

	pp := svc.MakePlotPoint("Title", "Desc")
	if pp.Title != "Title" || pp.Desc != "Desc" {
		t.Errorf("MakePlotPoint() = %+v, want Title=Title Desc=Desc", pp)
	}
}

func TestNovelSetWordCountPreservesInsertionOrder(t *testing.T) {
	n := NewNovel()
	n.SetWordCount("2024-01-02", WordCount{Count: "200"})
	n.SetWordCount("2024-01-01", WordCount{Count: "100"})
	n.SetWordCount("2024-01-02", WordCount{Count: "250"}) // update, not a new date

	got := n.WordCountDates()
	want := []string{"2024-01-02", "2024-01-01"}
	if len(got) != len(want) {
		t.Fatalf("WordCountDates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WordCountDates()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if n.WCLog["2024-01-02"].Count != "250" {
		t.Errorf("WCLog[2024-01-02].Count = %q, want 250 (update should overwrite)", n.WCLog["2024-01-02"].Count)
	}
}
