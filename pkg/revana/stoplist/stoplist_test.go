package stoplist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManagerBasic(t *testing.T) {
	m := NewManager([]string{"the", "And", " of "})

	for _, w := range []string{"the", "and", "of", "THE"} {
		if !m.IsStop(w) {
			t.Errorf("IsStop(%q) = false, want true", w)
		}
	}
	if m.IsStop("vacuum") {
		t.Error("IsStop(vacuum) = true, want false")
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestManagerAddRemove(t *testing.T) {
	m := NewManager(nil)

	m.Add("Very")
	if !m.IsStop("very") {
		t.Error("added word should be a stopword")
	}
	m.Remove("VERY")
	if m.IsStop("very") {
		t.Error("removed word should not be a stopword")
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	m := NewManager([]string{"the", "a", "and"})

	in := []string{"the", "vacuum", "and", "the", "carpet", "a", "broom"}
	got := m.Filter(in)

	want := []string{"vacuum", "carpet", "broom"}
	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Filter()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilterNeverLengthens(t *testing.T) {
	m := NewManager([]string{"and"})

	cases := [][]string{
		nil,
		{},
		{"and"},
		{"one", "and", "two"},
		{"one", "two", "three"},
	}
	for _, in := range cases {
		if got := m.Filter(in); len(got) > len(in) {
			t.Errorf("Filter(%v) lengthened sequence: %v", in, got)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	m := NewManager([]string{"the"})
	if got := m.Filter(nil); got != nil {
		t.Errorf("Filter(nil) = %v, want nil", got)
	}
}

func TestSuggestCandidates(t *testing.T) {
	stats := []TermStats{
		{Term: "product", GroupCount: 98, GroupFrac: 0.98},
		{Term: "vacuum", GroupCount: 40, GroupFrac: 0.40},
		{Term: "zirconium", GroupCount: 1, GroupFrac: 0.01},
	}

	cands := SuggestCandidates(stats, DefaultThresholds())
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	// sorted by term
	if cands[0].Term != "product" || !cands[0].HighDF {
		t.Errorf("expected product flagged HighDF, got %+v", cands[0])
	}
	if cands[1].Term != "zirconium" || !cands[1].Rare {
		t.Errorf("expected zirconium flagged Rare, got %+v", cands[1])
	}
}

func TestKeepBand(t *testing.T) {
	stats := []TermStats{
		{Term: "everywhere", GroupFrac: 0.95},
		{Term: "vacuum", GroupFrac: 0.40},
		{Term: "carpet", GroupFrac: 0.05},
		{Term: "rare", GroupFrac: 0.04},
	}

	got := Keep(stats, DefaultThresholds())
	want := []string{"carpet", "vacuum"}
	if len(got) != len(want) {
		t.Fatalf("Keep() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keep()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stopwords_en.txt")
	content := "the\nand\n# comment\n\nof\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
	if !m.IsStop("of") {
		t.Error("expected 'of' to be a stopword")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stoplist.yaml")
	content := "terms:\n  - the\n  - and\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.IsStop("the") || !m.IsStop("and") {
		t.Error("YAML terms should be stopwords")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
