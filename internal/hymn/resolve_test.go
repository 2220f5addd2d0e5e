package hymn

import (
	"errors"
	"testing"
)

var resolveCorpus = []Record{
	{Number: "1", Title: "聖哉聖哉聖哉"},
	{Number: "114", Title: "主曾離寶座"},
	{Number: "201", Title: "寶座之歌"},
	{Title: "三一頌"},
}

func TestSplitSpecifier(t *testing.T) {
	cases := []struct {
		spec, number, name string
	}{
		{"114_主曾離寳座", "114", "主曾離寳座"},
		{"114", "114", ""},
		{"主曾離寳座", "", "主曾離寳座"},
		{"榮耀_歸主名", "", "榮耀_歸主名"}, // underscore without numeric prefix
	}
	for _, tc := range cases {
		number, name := SplitSpecifier(tc.spec)
		if number != tc.number || name != tc.name {
			t.Errorf("SplitSpecifier(%q): expected (%q, %q), got (%q, %q)",
				tc.spec, tc.number, tc.name, number, name)
		}
	}
}

func TestResolve_ByNumberAndName(t *testing.T) {
	rec, err := Resolve(resolveCorpus, "114_主曾離寳座")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number != "114" || rec.Title != "主曾離寶座" {
		t.Errorf("expected hymn 114, got %+v", rec)
	}
}

func TestResolve_ByNumberAlone(t *testing.T) {
	rec, err := Resolve(resolveCorpus, "114")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "主曾離寶座" {
		t.Errorf("expected 主曾離寶座, got %+v", rec)
	}
}

func TestResolve_ByFuzzyTitle(t *testing.T) {
	rec, err := Resolve(resolveCorpus, "主曾離寳座")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number != "114" {
		t.Errorf("expected hymn 114 via fuzzy title, got %+v", rec)
	}
}

func TestResolve_NumberDisagreesWithName(t *testing.T) {
	// The number exists but its stored title is a different hymn; the
	// name part wins through fuzzy search.
	rec, err := Resolve(resolveCorpus, "1_寶座之歌")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number != "201" {
		t.Errorf("expected fuzzy search to override number, got %+v", rec)
	}
}

func TestResolve_FirstMatchInCorpusOrder(t *testing.T) {
	rec, err := Resolve(resolveCorpus, "寳座")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number != "114" {
		t.Errorf("expected first corpus-order match (114), got %+v", rec)
	}
}

func TestResolve_NotFound(t *testing.T) {
	_, err := Resolve(resolveCorpus, "999_不存在的詩歌")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Specifier != "999_不存在的詩歌" {
		t.Errorf("expected specifier preserved in error, got %q", notFound.Specifier)
	}
}
