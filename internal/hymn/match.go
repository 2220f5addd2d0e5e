// Package hymn matches hymn titles under the character-variant
// equivalences that show up in hand-typed service sheets: the same
// hymn may be filed as 主曾離寶座 or 主曾離寳座.
package hymn

import "strings"

// variantClasses lists the characters treated as interchangeable when
// matching titles. The first character of each class is the
// representative the others fold into. Extending the table means
// adding a class here; the matching logic never special-cases strings.
var variantClasses = []string{
	"你祢袮",
	"寶寳",
	"他祂",
	"于於",
	"牆墻",
}

var variantFold = buildVariantFold()

func buildVariantFold() map[rune]rune {
	fold := make(map[rune]rune)
	for _, class := range variantClasses {
		runes := []rune(class)
		for _, r := range runes[1:] {
			fold[r] = runes[0]
		}
	}
	return fold
}

// Normalize maps every character to its variant-class representative.
// Characters outside the table pass through unchanged.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := variantFold[r]; ok {
			r = rep
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Matches reports whether a candidate title and a query refer to the
// same hymn: equal after normalization, or one containing the other.
// Containment lets a short query find a longer title.
func Matches(title, query string) bool {
	t, q := Normalize(title), Normalize(query)
	if t == q {
		return true
	}
	return strings.Contains(t, q) || strings.Contains(q, t)
}

// Search returns every record whose title matches the query, in corpus
// order. An empty result is a valid outcome, not an error. A blank
// query matches nothing.
func Search(corpus []Record, query string) []Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	var found []Record
	for _, rec := range corpus {
		if Matches(rec.Title, query) {
			found = append(found, rec)
		}
	}
	return found
}
