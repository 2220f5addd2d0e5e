package hymn

import (
	"fmt"
	"strings"
)

// NotFoundError reports a specifier that resolved to nothing after
// both the number and fuzzy-title strategies.
type NotFoundError struct {
	Specifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no hymn matches %q", e.Specifier)
}

// SplitSpecifier breaks a specifier into its optional hymnal number
// and name parts. Accepted shapes: "114_主曾離寳座", "114", "主曾離寳座".
func SplitSpecifier(spec string) (number, name string) {
	spec = strings.TrimSpace(spec)
	if before, after, ok := strings.Cut(spec, "_"); ok && isDigits(before) {
		return before, strings.TrimSpace(after)
	}
	if isDigits(spec) {
		return spec, ""
	}
	return "", spec
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Resolve locates the hymn a specifier refers to. An unambiguous
// number match wins; otherwise the name part falls back to fuzzy
// title search and the first match in corpus order is used.
func Resolve(corpus []Record, spec string) (Record, error) {
	number, name := SplitSpecifier(spec)

	if number != "" {
		var byNumber []Record
		for _, rec := range corpus {
			if rec.Number == number {
				byNumber = append(byNumber, rec)
			}
		}
		if len(byNumber) == 1 {
			rec := byNumber[0]
			if name == "" || Matches(rec.Title, name) {
				return rec, nil
			}
			// The stored title disagrees with the name part;
			// trust the name and fall through to fuzzy search.
		}
	}

	if name != "" {
		if found := Search(corpus, name); len(found) > 0 {
			return found[0], nil
		}
	}

	return Record{}, &NotFoundError{Specifier: spec}
}
