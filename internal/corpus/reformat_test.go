package corpus

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitLongLines_ShortLinesPassThrough(t *testing.T) {
	in := []string{"短句", "另一短句"}
	got := SplitLongLines(in, 30)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("expected short lines untouched, got %v", got)
	}
}

func TestSplitLongLines_SemicolonSplit(t *testing.T) {
	long := strings.Repeat("讚", 15) + "；" + strings.Repeat("美", 15)
	got := SplitLongLines([]string{long}, 30)
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(got), got)
	}
	if !strings.HasSuffix(got[0], "；") {
		t.Errorf("expected delimiter kept on first part, got %q", got[0])
	}
}

func TestSplitLongLines_SentenceThenComma(t *testing.T) {
	long := strings.Repeat("一", 10) + "。" + strings.Repeat("二", 16) + "，" + strings.Repeat("三", 16)
	got := SplitLongLines([]string{long}, 30)
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(got), got)
	}
	if got[0] != strings.Repeat("一", 10)+"。" {
		t.Errorf("unexpected first segment: %q", got[0])
	}
}

func TestReformatStanzas_KeepsShortStanzas(t *testing.T) {
	stanzas := [][]string{{"一", "二", "三", "四", "五"}}
	got := ReformatStanzas(stanzas, 5, 4)
	if len(got) != 1 || len(got[0]) != 5 {
		t.Errorf("expected 5-line stanza untouched, got %v", got)
	}
}

func TestReformatStanzas_ChunksLongStanza(t *testing.T) {
	stanzas := [][]string{{"1", "2", "3", "4", "5", "6", "7", "8"}}
	got := ReformatStanzas(stanzas, 5, 4)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(got), got)
	}
	if len(got[0]) != 4 || len(got[1]) != 4 {
		t.Errorf("expected 4+4 lines, got %d+%d", len(got[0]), len(got[1]))
	}
}

func TestReformatStanzas_AbsorbsShortRemainder(t *testing.T) {
	// 9 lines: a lone trailing line (like 阿們) rides along with the
	// previous chunk instead of getting its own slide.
	stanzas := [][]string{{"1", "2", "3", "4", "5", "6", "7", "8", "阿們"}}
	got := ReformatStanzas(stanzas, 5, 4)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(got), got)
	}
	if len(got[1]) != 5 || got[1][4] != "阿們" {
		t.Errorf("expected trailing line absorbed into last chunk, got %v", got[1])
	}
}
