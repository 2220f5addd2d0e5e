package corpus

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/tzlin/deckgen/internal/hymn"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLibrary(t *testing.T) *Library {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"hymns/001_聖哉聖哉聖哉.md": "# 聖哉聖哉聖哉\n\n## (1)\n聖哉聖哉聖哉，全能大主宰  \n",
		"hymns/114_主曾離寳座.md":  "# 主曾離寳座\n\n## (1)\n主曾離寳座，降世為人  \n",
		"hymns/三一頌.txt":        "三一頌\n\n讚美真神萬福之源\n天下生靈都當頌言\n",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	lib, err := Open(fs, "hymns", false, testLogger())
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	return lib
}

func TestLibrary_Open(t *testing.T) {
	lib := testLibrary(t)
	if lib.Len() != 3 {
		t.Fatalf("expected 3 hymns, got %d", lib.Len())
	}
	// Walk order is lexical, so the numbered files come first.
	recs := lib.Records()
	if recs[0].Number != "001" || recs[1].Number != "114" {
		t.Errorf("unexpected corpus order: %v", recs)
	}
}

func TestLibrary_SearchToleratesVariants(t *testing.T) {
	lib := testLibrary(t)
	found := lib.Search("主曾離寶座")
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	if found[0].Number != "114" {
		t.Errorf("expected hymn 114, got %+v", found[0])
	}
}

func TestLibrary_SearchNoMatch(t *testing.T) {
	lib := testLibrary(t)
	if found := lib.Search("不存在的詩歌"); len(found) != 0 {
		t.Errorf("expected empty result, got %v", found)
	}
}

func TestLibrary_ResolveSpecifier(t *testing.T) {
	lib := testLibrary(t)

	rec, err := lib.Resolve("114_主曾離寳座")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number != "114" {
		t.Errorf("expected hymn 114, got %+v", rec)
	}

	rec, err = lib.Resolve("主曾離寶座")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number != "114" {
		t.Errorf("expected fuzzy title resolution, got %+v", rec)
	}

	_, err = lib.Resolve("999_不存在的詩歌")
	var notFound *hymn.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestLibrary_AddPersistsMarkdown(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("hymns", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	lib, err := Open(fs, "hymns", false, testLogger())
	if err != nil {
		t.Fatalf("open library: %v", err)
	}

	rec := hymn.Record{Number: "7", Title: "新詩歌", Stanzas: [][]string{{"第一行", "第二行"}}}
	if err := lib.Add(rec); err != nil {
		t.Fatalf("add: %v", err)
	}

	if found := lib.Search("新詩歌"); len(found) != 1 {
		t.Fatalf("expected added hymn to be searchable, got %v", found)
	}

	// Re-opening from the same filesystem sees the persisted file.
	again, err := Open(fs, "hymns", false, testLogger())
	if err != nil {
		t.Fatalf("reopen library: %v", err)
	}
	rec2, err := again.Resolve("7_新詩歌")
	if err != nil {
		t.Fatalf("resolve after reopen: %v", err)
	}
	if len(rec2.Stanzas) != 1 || rec2.Stanzas[0][0] != "第一行" {
		t.Errorf("persisted lyrics wrong: %+v", rec2)
	}
}
