package corpus

import (
	"strings"
	"testing"

	"github.com/tzlin/deckgen/internal/hymn"
)

func TestMarkdownParser_HymnFormat(t *testing.T) {
	input := `# 主曾離寶座

## (1)
主曾離寶座，降世為人，
捨棄天上榮華富貴。

## (2)
祂受痛苦，為我捨命，
愛何長闊高深。
`
	p := &MarkdownParser{}
	rec, err := p.Parse(strings.NewReader(input), "114_主曾離寶座.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Title != "主曾離寶座" {
		t.Errorf("expected title 主曾離寶座, got %q", rec.Title)
	}
	if rec.Number != "114" {
		t.Errorf("expected number 114 from filename, got %q", rec.Number)
	}
	if len(rec.Stanzas) != 2 {
		t.Fatalf("expected 2 stanzas, got %d", len(rec.Stanzas))
	}
	if len(rec.Stanzas[0]) != 2 {
		t.Fatalf("expected 2 lines in first stanza, got %d", len(rec.Stanzas[0]))
	}
	if rec.Stanzas[0][0] != "主曾離寶座，降世為人，" {
		t.Errorf("hard-break spaces not stripped: %q", rec.Stanzas[0][0])
	}
}

func TestMarkdownParser_TitleCleaning(t *testing.T) {
	input := "# 114_主曾離寶座 (1)\n\n## (1)\n一句歌詞  \n"
	p := &MarkdownParser{}
	rec, err := p.Parse(strings.NewReader(input), "hymn.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "主曾離寶座" {
		t.Errorf("expected cleaned title, got %q", rec.Title)
	}
}

func TestMarkdownParser_TitleOnly(t *testing.T) {
	p := &MarkdownParser{}
	rec, err := p.Parse(strings.NewReader("# 三一頌\n"), "三一頌.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "三一頌" {
		t.Errorf("expected title 三一頌, got %q", rec.Title)
	}
	if len(rec.Stanzas) != 0 {
		t.Errorf("expected no stanzas, got %d", len(rec.Stanzas))
	}
}

func TestTextParser_Stanzas(t *testing.T) {
	input := "三一頌\n\n讚美真神萬福之源\n天下生靈都當頌言\n\n天上萬軍也讚主名\n同心讚美父子聖靈\n"
	p := &TextParser{}
	rec, err := p.Parse(strings.NewReader(input), "三一頌.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "三一頌" {
		t.Errorf("expected title 三一頌, got %q", rec.Title)
	}
	if len(rec.Stanzas) != 2 {
		t.Fatalf("expected 2 stanzas, got %d", len(rec.Stanzas))
	}
	if rec.Stanzas[1][1] != "同心讚美父子聖靈" {
		t.Errorf("unexpected stanza content: %v", rec.Stanzas[1])
	}
}

func TestFormatMarkdown_RoundTrip(t *testing.T) {
	rec := mustParseMarkdown(t, "# 主曾離寶座\n\n## (1)\n第一行  \n第二行  \n\n## (2)\n第三行  \n", "114_主曾離寶座.md")
	again := mustParseMarkdown(t, FormatMarkdown(rec), "114_主曾離寶座.md")

	if again.Title != rec.Title {
		t.Errorf("title changed through round trip: %q vs %q", rec.Title, again.Title)
	}
	if len(again.Stanzas) != len(rec.Stanzas) {
		t.Fatalf("stanza count changed: %d vs %d", len(rec.Stanzas), len(again.Stanzas))
	}
	if again.Stanzas[0][1] != "第二行" {
		t.Errorf("unexpected line after round trip: %q", again.Stanzas[0][1])
	}
}

func mustParseMarkdown(t *testing.T, src, filename string) hymn.Record {
	t.Helper()
	p := &MarkdownParser{}
	parsed, err := p.Parse(strings.NewReader(src), filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return *parsed
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"114_主曾離寶座", "主曾離寶座"},
		{"114 主曾離寶座", "主曾離寶座"},
		{"主曾離寶座 (2)", "主曾離寶座"},
		{"#23 詩歌", "詩歌"},
		{"三一頌", "三一頌"},
	}
	for _, tc := range cases {
		if got := CleanTitle(tc.in); got != tc.want {
			t.Errorf("CleanTitle(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
