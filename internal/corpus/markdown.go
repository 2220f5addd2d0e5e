package corpus

import (
	"io"
	"strings"

	"github.com/tzlin/deckgen/internal/hymn"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser reads the markdown hymn format:
//
//	# Hymn Title
//
//	## (1)
//	First line of verse 1
//	Second line of verse 1
//
//	## (2)
//	...
//
// Level-2 headings mark stanza boundaries; their "(n)" text is only a
// marker and is not kept.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*hymn.Record, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	rec := &hymn.Record{}
	var stanza []string
	flush := func() {
		if len(stanza) > 0 {
			rec.Stanzas = append(rec.Stanzas, stanza)
			stanza = nil
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			switch node.Level {
			case 1:
				if rec.Title == "" {
					rec.Title = CleanTitle(string(node.Text(src)))
				}
			case 2:
				flush()
			}
		case *ast.Paragraph:
			stanza = append(stanza, blockLines(node, src)...)
		}
	}
	flush()

	fillFromFilename(rec, filename)
	return rec, nil
}

// blockLines returns a block node's source lines with trailing
// hard-break spaces stripped.
func blockLines(n ast.Node, src []byte) []string {
	var out []string
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(src)), " \n")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
