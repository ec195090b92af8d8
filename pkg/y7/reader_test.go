package y7

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkbound/novelbridge/pkg/novel"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yw7")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadLockedByExternalTool(t *testing.T) {
	path := writeFixture(t, `<YWRITER7><PROJECT><Title>X</Title></PROJECT></YWRITER7>`)
	if err := os.WriteFile(path+".lock", []byte("x"), 0644); err != nil {
		t.Fatalf("create lock file: %v", err)
	}

	_, err := Read(path, novel.DefaultService{})
	if !errors.Is(err, ErrLockedByExternalTool) {
		t.Fatalf("Read() error = %v, want ErrLockedByExternalTool", err)
	}
}

func TestReadParseFailure(t *testing.T) {
	path := writeFixture(t, "this is not a Y7 project file")
	_, err := Read(path, novel.DefaultService{})
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("Read() error = %v, want ErrParseFailure", err)
	}
}

func TestReadProjectScalarsAndLocale(t *testing.T) {
	path := writeFixture(t, `<YWRITER7>
  <PROJECT>
    <Title>My Novel</Title>
    <AuthorName>Jane Doe</AuthorName>
    <Fields>
      <Field_LanguageCode>en</Field_LanguageCode>
      <Field_CountryCode>US</Field_CountryCode>
    </Fields>
  </PROJECT>
  <PROJECTVARS>
    <PROJECTVAR><ID>1</ID><Title>lang=de</Title><Desc></Desc></PROJECTVAR>
  </PROJECTVARS>
</YWRITER7>`)

	got, err := Read(path, novel.DefaultService{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Title != "My Novel" {
		t.Errorf("Title = %q, want %q", got.Title, "My Novel")
	}
	if got.AuthorName != "Jane Doe" {
		t.Errorf("AuthorName = %q, want %q", got.AuthorName, "Jane Doe")
	}
	if got.LanguageCode != "en" || got.CountryCode != "US" {
		t.Errorf("LanguageCode/CountryCode = %q/%q, want en/US", got.LanguageCode, got.CountryCode)
	}
	if len(got.Languages) != 1 || got.Languages[0] != "de" {
		t.Errorf("Languages = %v, want [de]", got.Languages)
	}
}

// TestReadChapterTypeDecoding exercises the Unused/Type/ChapterType
// decoding table (spec 4.4.3), including the row the spec's own design
// notes flag as self-contradictory (ChapterType "0" with Unused present);
// this codec resolves that row in favor of Unused, documented in
// DESIGN.md. Unused is only ever consulted when Type or ChapterType is
// present; on its own it leaves the chapter normal.
func TestReadChapterTypeDecoding(t *testing.T) {
	tests := []struct {
		name        string
		unused      string // "" means the element is absent
		typ         string
		chapterType string
		want        int
	}{
		{"all absent", "", "", "", 0},
		{"type 0 only", "", "0", "", 0},
		{"unused + type 1", "-1", "1", "", 1},
		{"unused + type 0", "-1", "0", "", 1},
		{"chapterType 0, no unused", "", "", "0", 0},
		{"chapterType 0 with unused", "-1", "", "0", 1},
		{"chapterType 1", "", "", "1", 1},
		{"chapterType 2", "", "", "2", 1},
		{"unused only, no type fields", "-1", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b []byte
			b = append(b, []byte(`<YWRITER7><PROJECT><Title>X</Title></PROJECT><CHAPTERS><CHAPTER><ID>1</ID><Title>Ch</Title>`)...)
			if tt.unused != "" {
				b = append(b, []byte(fmt.Sprintf("<Unused>%s</Unused>", tt.unused))...)
			}
			if tt.typ != "" {
				b = append(b, []byte(fmt.Sprintf("<Type>%s</Type>", tt.typ))...)
			}
			if tt.chapterType != "" {
				b = append(b, []byte(fmt.Sprintf("<ChapterType>%s</ChapterType>", tt.chapterType))...)
			}
			b = append(b, []byte(`</CHAPTER></CHAPTERS></YWRITER7>`)...)

			path := writeFixture(t, string(b))
			got, err := Read(path, novel.DefaultService{})
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			ch := got.Chapters["ch1"]
			if ch == nil {
				t.Fatal("chapter ch1 not found")
			}
			if ch.Type != tt.want {
				t.Errorf("Type = %d, want %d", ch.Type, tt.want)
			}
		})
	}
}

// TestReadSceneTypeDecoding exercises the scene-level Unused/SceneType
// decoding (spec 4.4.4), including the stage-tag reclassification.
func TestReadSceneTypeDecoding(t *testing.T) {
	tests := []struct {
		name       string
		unused     string
		sceneType  string
		tags       string
		wantType   int
	}{
		{"no signals", "", "", "", novel.SectionNormal},
		{"sceneType 1", "", "1", "", novel.SectionNotes},
		{"sceneType 2", "", "2", "", novel.SectionNotes},
		{"unused only", "-1", "", "", novel.SectionNotes},
		{"sceneType 0 with unused", "-1", "0", "", novel.SectionNotes},
		{"stage tag wins", "-1", "0", "stage", novel.SectionStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b []byte
			b = append(b, []byte(`<YWRITER7><PROJECT><Title>X</Title></PROJECT><SCENES><SCENE><ID>1</ID><Title>Sc</Title>`)...)
			if tt.unused != "" {
				b = append(b, []byte(fmt.Sprintf("<Unused>%s</Unused>", tt.unused))...)
			}
			if tt.sceneType != "" {
				b = append(b, []byte(fmt.Sprintf("<Fields><Field_SceneType>%s</Field_SceneType></Fields>", tt.sceneType))...)
			}
			if tt.tags != "" {
				b = append(b, []byte(fmt.Sprintf("<Tags>%s</Tags>", tt.tags))...)
			}
			b = append(b, []byte(`</SCENE></SCENES></YWRITER7>`)...)

			path := writeFixture(t, string(b))
			got, err := Read(path, novel.DefaultService{})
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			sec := got.Sections["sc1"]
			if sec == nil {
				t.Fatal("section sc1 not found")
			}
			if sec.Type != tt.wantType {
				t.Errorf("Type = %d, want %d", sec.Type, tt.wantType)
			}
		})
	}
}

func TestReadSceneContentConvertsShortcodeToFlow(t *testing.T) {
	path := writeFixture(t, `<YWRITER7><PROJECT><Title>X</Title></PROJECT><SCENES><SCENE><ID>1</ID><Title>Sc</Title><SceneContent>Hello [i]world[/i].</SceneContent></SCENE></SCENES></YWRITER7>`)

	got, err := Read(path, novel.DefaultService{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	sec := got.Sections["sc1"]
	if sec == nil {
		t.Fatal("section sc1 not found")
	}
	const want = "<p>Hello <em>world</em>.</p>"
	if sec.Body != want {
		t.Errorf("Body = %q, want %q", sec.Body, want)
	}
}
