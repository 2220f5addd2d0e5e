// Package deck assembles the ordered slide content of a worship
// service from resolved hymns and fetched scripture. It emits
// structured slides (layout name plus text); rendering them into a
// presentation file is someone else's job.
package deck

import (
	"github.com/tzlin/deckgen/internal/bible"
	"github.com/tzlin/deckgen/internal/bibleapi"
)

// Layout names the slide master layout a slide should be rendered
// with. The names follow the service's presentation template.
type Layout string

const (
	LayoutPrelude   Layout = "prelude"
	LayoutMessage   Layout = "message"
	LayoutSection   Layout = "section"
	LayoutHymn      Layout = "hymn"
	LayoutScripture Layout = "verse"
	LayoutMemorize  Layout = "memorize"
	LayoutTeaching  Layout = "teaching"
	LayoutBlank     Layout = "blank"
)

// Slide is one rendered-ready slide: a layout, an optional title and
// the body lines.
type Slide struct {
	Layout Layout   `json:"layout"`
	Title  string   `json:"title,omitempty"`
	Lines  []string `json:"lines,omitempty"`
}

// Plan is the per-service configuration: which hymns, scripture and
// message fill the slots of the liturgy template.
type Plan struct {
	Hymns     []string `json:"hymns,omitempty"`     // congregational hymn specifiers
	Choir     string   `json:"choir,omitempty"`     // hymn by the choir
	Response  string   `json:"response,omitempty"`  // hymn after the teaching
	Offering  string   `json:"offering,omitempty"`  // hymn for the offering
	Scripture string   `json:"scripture"`           // citation for the reading
	Memorize  string   `json:"memorize,omitempty"`  // verse of the week citation
	Message   string   `json:"message"`             // sermon title
	Messenger string   `json:"messenger,omitempty"` // who brings the message
	Communion bool     `json:"communion,omitempty"`
}

// Passage is a fetched scripture reading: the range, its citation
// label and the verse text in reading order.
type Passage struct {
	Range  bible.VerseRange `json:"range"`
	Label  string           `json:"label"`
	Verses []bibleapi.Verse `json:"verses"`
}
