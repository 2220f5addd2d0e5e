package bible

import (
	"fmt"
	"strconv"
	"strings"
)

// VerseRange is one contiguous span of verses within a single book.
// It may cross a chapter boundary, e.g. 詩篇23:1-24:10.
type VerseRange struct {
	Book         string `json:"book"`
	StartChapter int    `json:"start_chapter"`
	StartVerse   int    `json:"start_verse"`
	EndChapter   int    `json:"end_chapter"`
	EndVerse     int    `json:"end_verse"`
}

// Label reconstructs the citation text for a single range, e.g.
// "約翰福音3:16" or "詩篇23:1-24:10".
func (r VerseRange) Label() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%d:%d", r.Book, r.StartChapter, r.StartVerse)
	switch {
	case r.EndChapter != r.StartChapter:
		fmt.Fprintf(&b, "-%d:%d", r.EndChapter, r.EndVerse)
	case r.EndVerse != r.StartVerse:
		fmt.Fprintf(&b, "-%d", r.EndVerse)
	}
	return b.String()
}

// MalformedCitationError reports a citation that cannot be tokenized
// into the book/chapter/verse grammar.
type MalformedCitationError struct {
	Input  string
	Reason string
}

func (e *MalformedCitationError) Error() string {
	return fmt.Sprintf("malformed citation %q: %s", e.Input, e.Reason)
}

// UnknownBookError reports a book name the registry does not know.
type UnknownBookError struct {
	Name string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book name %q", e.Name)
}

// punctFolder maps the full-width punctuation that shows up in
// hand-typed citations onto the ASCII forms the grammar uses, and
// strips spaces.
var punctFolder = strings.NewReplacer(
	"～", "-",
	"－", "-",
	"_", "-",
	"，", ",",
	"、", ",",
	"：", ":",
	"　", "",
	" ", "",
	"\t", "",
)

// Parse tokenizes a citation string into an ordered sequence of verse
// ranges. Passages are separated by semicolons; a passage without a
// book name inherits the most recently seen one. Book names are
// validated against reg. The result preserves source order, which is
// reading order.
func Parse(reg *Registry, citation string) ([]VerseRange, error) {
	if strings.TrimSpace(citation) == "" {
		return nil, &MalformedCitationError{Input: citation, Reason: "empty citation"}
	}

	var ranges []VerseRange
	book := "" // current book, threaded left to right across passages
	for _, raw := range splitPassages(citation) {
		passage := punctFolder.Replace(strings.TrimSpace(raw))
		if passage == "" {
			return nil, &MalformedCitationError{Input: citation, Reason: "empty passage"}
		}

		name, rest := splitBookName(passage)
		if name != "" {
			canonical, ok := reg.Lookup(name)
			if !ok {
				return nil, &UnknownBookError{Name: name}
			}
			book = canonical
		} else if book == "" {
			return nil, &MalformedCitationError{
				Input:  citation,
				Reason: fmt.Sprintf("passage %q has no book name and none precedes it", passage),
			}
		}

		rs, err := parseVerseSpec(book, rest, citation)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, rs...)
	}
	return ranges, nil
}

func splitPassages(citation string) []string {
	return strings.FieldsFunc(citation, func(r rune) bool {
		return r == ';' || r == '；'
	})
}

// splitBookName peels the leading non-digit run off a passage. An
// empty book means the passage starts with a chapter number and
// inherits the current book.
func splitBookName(passage string) (book, rest string) {
	for i, r := range passage {
		if r >= '0' && r <= '9' {
			return passage[:i], passage[i:]
		}
	}
	return passage, ""
}

// parseVerseSpec parses the chapter:verse part of one passage. Comma
// groups each yield a separate range; the chapter threads across
// groups so "12:1-2,9-13" keeps chapter 12 and "11:12-13:15,19" lands
// verse 19 in chapter 13.
func parseVerseSpec(book, spec, input string) ([]VerseRange, error) {
	if spec == "" {
		return nil, &MalformedCitationError{Input: input, Reason: "book without chapter and verse"}
	}

	chapter := 0 // current chapter within this passage; 0 means none seen yet
	var out []VerseRange
	for _, group := range strings.Split(spec, ",") {
		if group == "" {
			return nil, &MalformedCitationError{Input: input, Reason: "empty verse group"}
		}

		lhs, rhs, isRange := strings.Cut(group, "-")

		startChapter, startVerse, err := parseLoc(lhs, chapter, input)
		if err != nil {
			return nil, err
		}

		endChapter, endVerse := startChapter, startVerse
		if isRange {
			// A right-hand side carrying its own ":" jumps to
			// another chapter; a bare number stays in the start
			// chapter.
			endChapter, endVerse, err = parseLoc(rhs, startChapter, input)
			if err != nil {
				return nil, err
			}
		}
		chapter = endChapter

		if endChapter < startChapter || (endChapter == startChapter && endVerse < startVerse) {
			return nil, &MalformedCitationError{
				Input:  input,
				Reason: fmt.Sprintf("range %q ends before it starts", group),
			}
		}

		out = append(out, VerseRange{
			Book:         book,
			StartChapter: startChapter,
			StartVerse:   startVerse,
			EndChapter:   endChapter,
			EndVerse:     endVerse,
		})
	}
	return out, nil
}

// parseLoc parses "chapter:verse" or a bare verse number inheriting
// the given chapter. A bare number with no chapter to inherit is the
// "chapter with no verse" case, which the grammar rejects.
func parseLoc(tok string, inheritChapter int, input string) (chapter, verse int, err error) {
	parts := strings.Split(tok, ":")
	switch len(parts) {
	case 1:
		if inheritChapter == 0 {
			return 0, 0, &MalformedCitationError{
				Input:  input,
				Reason: fmt.Sprintf("%q has a chapter but no verse", tok),
			}
		}
		v, err := parseNum(parts[0], input)
		if err != nil {
			return 0, 0, err
		}
		return inheritChapter, v, nil
	case 2:
		c, err := parseNum(parts[0], input)
		if err != nil {
			return 0, 0, err
		}
		v, err := parseNum(parts[1], input)
		if err != nil {
			return 0, 0, err
		}
		return c, v, nil
	default:
		return 0, 0, &MalformedCitationError{
			Input:  input,
			Reason: fmt.Sprintf("too many chapter separators in %q", tok),
		}
	}
}

func parseNum(s, input string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &MalformedCitationError{
			Input:  input,
			Reason: fmt.Sprintf("%q is not a chapter or verse number", s),
		}
	}
	return n, nil
}
