package novel

// ID prefixes. Every entity ID in the novel graph carries one of these as
// its first two characters; the numeric yWriter-side ID follows.
const (
	ChapterPrefix   = "ch"
	SectionPrefix   = "sc"
	PlotPointPrefix = "pp"
	PlotLinePrefix  = "pl"
	CharacterPrefix = "cr"
	LocationPrefix  = "lc"
	ItemPrefix      = "it"
	NotePrefix      = "pn"
)

// Root sentinels used as Tree parent keys for each entity collection.
const (
	RootChapters = "CH_ROOT"
	RootPlotLines = "PL_ROOT"
	RootCharacters = "CR_ROOT"
	RootLocations = "LC_ROOT"
	RootItems = "IT_ROOT"
	RootProjectNotes = "PN_ROOT"
)

// StageMarker is the reserved tag that marks a section as a stage
// (structural) section rather than narrative content.
const StageMarker = "stage"
