package deck

import (
	"fmt"
	"strings"

	"github.com/tzlin/deckgen/internal/corpus"
	"github.com/tzlin/deckgen/internal/hymn"
)

// Content holds everything the pipeline resolved and fetched for one
// service: hymns keyed by specifier, the scripture reading and the
// verse of the week.
type Content struct {
	Hymns     map[string]hymn.Record
	Scripture []Passage
	Memorize  []Passage
}

// Build assembles the slide sequence for a service. It is pure: all
// lookups and fetches happened before. A hymn the content map lacks
// for a filled slot is an assembly bug and fails the build.
func Build(tmpl Template, plan Plan, content Content) ([]Slide, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	var slides []Slide
	for _, step := range tmpl {
		switch step.Type {
		case StepPrelude:
			slides = append(slides, Slide{Layout: LayoutPrelude, Lines: splitLines(step.Text)})

		case StepMessage:
			slides = append(slides, Slide{Layout: LayoutMessage, Lines: splitLines(step.Text)})

		case StepSection:
			slides = append(slides, Slide{Layout: LayoutSection, Title: step.Title})

		case StepBlank:
			slides = append(slides, Slide{Layout: LayoutBlank})

		case StepCommunion:
			if plan.Communion {
				slides = append(slides, Slide{Layout: LayoutSection, Title: step.Title})
			}

		case StepHymn:
			specs := stepSpecifiers(step, plan)
			for _, spec := range specs {
				rec, ok := content.Hymns[spec]
				if !ok {
					return nil, fmt.Errorf("hymn %q was not resolved before assembly", spec)
				}
				slides = append(slides, HymnSlides(rec)...)
			}

		case StepScripture:
			for _, p := range content.Scripture {
				slides = append(slides, ScriptureSlides(p)...)
			}

		case StepMemorize:
			// Only the first citation becomes the verse of the week.
			if len(content.Memorize) > 0 {
				slides = append(slides, MemorizeSlide(content.Memorize[0]))
			}

		case StepTeaching:
			slides = append(slides, Slide{
				Layout: LayoutTeaching,
				Title:  "信息",
				Lines:  teachingLines(plan),
			})
		}
	}
	return slides, nil
}

func stepSpecifiers(step Step, plan Plan) []string {
	if step.Hymn != "" {
		return []string{step.Hymn}
	}
	switch step.Slot {
	case SlotCongregation:
		return plan.Hymns
	case SlotChoir:
		return optional(plan.Choir)
	case SlotResponse:
		return optional(plan.Response)
	case SlotOffering:
		return optional(plan.Offering)
	}
	return nil
}

func optional(spec string) []string {
	if spec == "" {
		return nil
	}
	return []string{spec}
}

// HymnSlides renders a hymn as one slide per reformatted stanza chunk,
// every slide titled with the hymn and its stanza number.
func HymnSlides(rec hymn.Record) []Slide {
	chunks := corpus.ReformatStanzas(rec.Stanzas, 5, 4)
	if len(chunks) == 0 {
		return []Slide{{Layout: LayoutHymn, Title: rec.Title}}
	}
	slides := make([]Slide, 0, len(chunks))
	for i, chunk := range chunks {
		slides = append(slides, Slide{
			Layout: LayoutHymn,
			Title:  fmt.Sprintf("%s (%d)", rec.Title, i+1),
			Lines:  chunk,
		})
	}
	return slides
}

// versesPerSlide is how many verses share one scripture slide.
const versesPerSlide = 2

// ScriptureSlides renders a passage two verses per slide, the
// citation label as the slide title and each verse prefixed with its
// number.
func ScriptureSlides(p Passage) []Slide {
	var slides []Slide
	for i := 0; i < len(p.Verses); i += versesPerSlide {
		end := i + versesPerSlide
		if end > len(p.Verses) {
			end = len(p.Verses)
		}
		var lines []string
		for _, v := range p.Verses[i:end] {
			lines = append(lines, fmt.Sprintf("%d　%s", v.Verse, v.Text))
		}
		slides = append(slides, Slide{
			Layout: LayoutScripture,
			Title:  p.Label,
			Lines:  lines,
		})
	}
	return slides
}

// MemorizeSlide renders the verse of the week: the joined text with
// the citation on its own closing line.
func MemorizeSlide(p Passage) Slide {
	var text string
	for _, v := range p.Verses {
		text += v.Text
	}
	return Slide{
		Layout: LayoutMemorize,
		Title:  "本週金句",
		Lines:  []string{text, p.Label},
	}
}

func teachingLines(plan Plan) []string {
	lines := []string{fmt.Sprintf("「%s」", plan.Message)}
	if plan.Messenger != "" {
		lines = append(lines, plan.Messenger)
	}
	return lines
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
