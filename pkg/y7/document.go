package y7

import "encoding/xml"

// document mirrors the on-disk Y7 XML tree. Fields are plain strings or
// pointers-to-string: a nil pointer means the element was absent, a
// non-nil pointer to "" means it was present but empty. Callers never
// construct this type directly; it exists only as the read/write wire
// format for reader.go and writer.go.
type document struct {
	XMLName      xml.Name         `xml:"YWRITER7"`
	Project      rawProject       `xml:"PROJECT"`
	Locations    rawLocationList  `xml:"LOCATIONS"`
	Items        rawItemList      `xml:"ITEMS"`
	Characters   rawCharacterList `xml:"CHARACTERS"`
	ProjectVars  rawProjectVars   `xml:"PROJECTVARS"`
	Scenes       rawSceneList     `xml:"SCENES"`
	Chapters     rawChapterList   `xml:"CHAPTERS"`
	ProjectNotes *rawNoteList     `xml:"PROJECTNOTES"`
	WCLog        *rawWCLog        `xml:"WCLog"`
}

type rawProject struct {
	Ver            string            `xml:"Ver,omitempty"`
	Title          string            `xml:"Title,omitempty"`
	AuthorName     string            `xml:"AuthorName,omitempty"`
	Desc           string            `xml:"Desc,omitempty"`
	WordCountStart string            `xml:"WordCountStart,omitempty"`
	WordTarget     string            `xml:"WordTarget,omitempty"`
	Fields         *rawProjectFields `xml:"Fields"`
}

type rawProjectFields struct {
	WorkPhase              string `xml:"Field_WorkPhase,omitempty"`
	RenumberChapters       string `xml:"Field_RenumberChapters,omitempty"`
	RenumberParts          string `xml:"Field_RenumberParts,omitempty"`
	RenumberWithinParts    string `xml:"Field_RenumberWithinParts,omitempty"`
	RomanChapterNumbers    string `xml:"Field_RomanChapterNumbers,omitempty"`
	RomanPartNumbers       string `xml:"Field_RomanPartNumbers,omitempty"`
	ChapterHeadingPrefix   string `xml:"Field_ChapterHeadingPrefix,omitempty"`
	ChapterHeadingSuffix   string `xml:"Field_ChapterHeadingSuffix,omitempty"`
	PartHeadingPrefix      string `xml:"Field_PartHeadingPrefix,omitempty"`
	PartHeadingSuffix      string `xml:"Field_PartHeadingSuffix,omitempty"`
	CustomGoal             string `xml:"Field_CustomGoal,omitempty"`
	CustomConflict         string `xml:"Field_CustomConflict,omitempty"`
	CustomOutcome          string `xml:"Field_CustomOutcome,omitempty"`
	CustomChrBio           string `xml:"Field_CustomChrBio,omitempty"`
	CustomChrGoals         string `xml:"Field_CustomChrGoals,omitempty"`
	SaveWordCount          string `xml:"Field_SaveWordCount,omitempty"`
	ReferenceDate          string `xml:"Field_ReferenceDate,omitempty"`
	LanguageCode           string `xml:"Field_LanguageCode,omitempty"`
	CountryCode            string `xml:"Field_CountryCode,omitempty"`
}

type rawLocationList struct {
	Locations []rawLocation `xml:"LOCATION"`
}

type rawLocation struct {
	ID    string `xml:"ID"`
	Title string `xml:"Title,omitempty"`
	Desc  string `xml:"Desc,omitempty"`
	AKA   string `xml:"AKA,omitempty"`
	Tags  string `xml:"Tags,omitempty"`
}

type rawItemList struct {
	Items []rawItem `xml:"ITEM"`
}

type rawItem struct {
	ID    string `xml:"ID"`
	Title string `xml:"Title,omitempty"`
	Desc  string `xml:"Desc,omitempty"`
	AKA   string `xml:"AKA,omitempty"`
	Tags  string `xml:"Tags,omitempty"`
}

type rawCharacterList struct {
	Characters []rawCharacter `xml:"CHARACTER"`
}

type rawCharacter struct {
	ID       string              `xml:"ID"`
	Title    string              `xml:"Title,omitempty"`
	Desc     string              `xml:"Desc,omitempty"`
	AKA      string              `xml:"AKA,omitempty"`
	Tags     string              `xml:"Tags,omitempty"`
	Notes    string              `xml:"Notes,omitempty"`
	Bio      string              `xml:"Bio,omitempty"`
	Goals    string              `xml:"Goals,omitempty"`
	FullName string              `xml:"FullName,omitempty"`
	Major    *string             `xml:"Major"`
	Fields   *rawCharacterFields `xml:"Fields"`
}

type rawCharacterFields struct {
	BirthDate string `xml:"Field_BirthDate,omitempty"`
	DeathDate string `xml:"Field_DeathDate,omitempty"`
}

type rawProjectVars struct {
	Vars []rawProjectVar `xml:"PROJECTVAR"`
}

type rawProjectVar struct {
	ID    string `xml:"ID"`
	Title string `xml:"Title,omitempty"`
	Desc  string `xml:"Desc,omitempty"`
	Tags  string `xml:"Tags,omitempty"`
}

type rawSceneList struct {
	Scenes []rawScene `xml:"SCENE"`
}

type rawScene struct {
	ID               string          `xml:"ID"`
	Title            string          `xml:"Title,omitempty"`
	Desc             string          `xml:"Desc,omitempty"`
	Unused           *string         `xml:"Unused"`
	Fields           *rawSceneFields `xml:"Fields"`
	Status           *string         `xml:"Status"`
	SceneContent     *string         `xml:"SceneContent"`
	Notes            string          `xml:"Notes,omitempty"`
	Tags             string          `xml:"Tags,omitempty"`
	AppendToPrev     *string         `xml:"AppendToPrev"`
	SpecificDateTime *string         `xml:"SpecificDateTime"`
	SpecificDateMode *string         `xml:"SpecificDateMode"`
	Day              *string         `xml:"Day"`
	Hour             *string         `xml:"Hour"`
	Minute           *string         `xml:"Minute"`
	LastsDays        string          `xml:"LastsDays,omitempty"`
	LastsHours       string          `xml:"LastsHours,omitempty"`
	LastsMinutes     string          `xml:"LastsMinutes,omitempty"`
	ReactionScene    *string         `xml:"ReactionScene"`
	Goal             string          `xml:"Goal,omitempty"`
	Conflict         string          `xml:"Conflict,omitempty"`
	Outcome          string          `xml:"Outcome,omitempty"`
	Characters       *rawCharRefs    `xml:"Characters"`
	Locations        *rawLocRefs     `xml:"Locations"`
	Items            *rawItemRefs    `xml:"Items"`
}

type rawSceneFields struct {
	SceneType  *string `xml:"Field_SceneType"`
	SceneArcs  string  `xml:"Field_SceneArcs,omitempty"`
	SceneAssoc string  `xml:"Field_SceneAssoc,omitempty"`
	CustomAR   *string `xml:"Field_CustomAR"`
}

type rawCharRefs struct {
	CharID []string `xml:"CharID"`
}

type rawLocRefs struct {
	LocID []string `xml:"LocID"`
}

type rawItemRefs struct {
	ItemID []string `xml:"ItemID"`
}

type rawChapterList struct {
	Chapters []rawChapter `xml:"CHAPTER"`
}

type rawChapter struct {
	ID           string            `xml:"ID"`
	Title        string            `xml:"Title,omitempty"`
	Desc         string            `xml:"Desc,omitempty"`
	Unused       *string           `xml:"Unused"`
	Fields       *rawChapterFields `xml:"Fields"`
	SectionStart *string           `xml:"SectionStart"`
	Type         *string           `xml:"Type"`
	ChapterType  *string           `xml:"ChapterType"`
	Scenes       *rawScIDList      `xml:"Scenes"`
}

type rawChapterFields struct {
	IsTrash             string `xml:"Field_IsTrash,omitempty"`
	NoNumber            string `xml:"Field_NoNumber,omitempty"`
	ArcDefinition       string `xml:"Field_ArcDefinition,omitempty"`
	ArcDefinitionLegacy string `xml:"Field_Arc_Definition,omitempty"`
}

type rawScIDList struct {
	ScID []string `xml:"ScID"`
}

type rawNoteList struct {
	Notes []rawNote `xml:"PROJECTNOTE"`
}

type rawNote struct {
	ID    string `xml:"ID"`
	Title string `xml:"Title,omitempty"`
	Desc  string `xml:"Desc,omitempty"`
}

type rawWCLog struct {
	Entries []rawWC `xml:"WC"`
}

type rawWC struct {
	Date       string `xml:"Date"`
	Count      string `xml:"Count"`
	TotalCount string `xml:"TotalCount"`
}

// strPtr returns a pointer to a freshly allocated copy of s, used to set
// presence-only elements when writing.
func strPtr(s string) *string { return &s }
