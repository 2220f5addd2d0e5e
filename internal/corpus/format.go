package corpus

import (
	"fmt"
	"strings"

	"github.com/tzlin/deckgen/internal/hymn"
)

// FormatMarkdown renders a record in the markdown hymn format the
// MarkdownParser reads. Lyric lines carry the two-space hard break.
func FormatMarkdown(rec hymn.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", rec.Title)
	for i, stanza := range rec.Stanzas {
		fmt.Fprintf(&b, "\n## (%d)\n", i+1)
		for _, line := range stanza {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("  \n")
		}
	}
	return b.String()
}

// MarkdownFilename is the corpus filename for a record, e.g.
// "114_主曾離寶座.md".
func MarkdownFilename(rec hymn.Record) string {
	if rec.Number != "" {
		return fmt.Sprintf("%s_%s.md", rec.Number, rec.Title)
	}
	return rec.Title + ".md"
}
