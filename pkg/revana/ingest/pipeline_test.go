package ingest

import (
	"reflect"
	"testing"

	"github.com/cognitext/revana/pkg/revana/stoplist"
	"github.com/cognitext/revana/pkg/revana/textclean"
)

func newTestPipeline(stopwords []string) *Pipeline {
	return NewPipeline(
		textclean.New(textclean.DefaultPolicy()),
		NewTokenizer(DefaultMinTokenLen),
		stoplist.NewManager(stopwords),
	)
}

func TestProcessWorkedExample(t *testing.T) {
	p := newTestPipeline(nil)

	got := p.Process("Great vacuum! Cleans carpets well.")

	if got.Cleaned != "great vacuum! cleans carpets well." {
		t.Errorf("Cleaned = %q", got.Cleaned)
	}

	wantTokens := []string{"great", "vacuum", "cleans", "carpets", "well"}
	if !reflect.DeepEqual(got.Tokens, wantTokens) {
		t.Errorf("Tokens = %v, want %v", got.Tokens, wantTokens)
	}
	if !reflect.DeepEqual(got.Filtered, wantTokens) {
		t.Errorf("Filtered = %v, want %v (no stopwords present)", got.Filtered, wantTokens)
	}

	wantStemmed := []string{"great", "vacuum", "clean", "carpet", "well"}
	if !reflect.DeepEqual(got.Stemmed, wantStemmed) {
		t.Errorf("Stemmed = %v, want %v", got.Stemmed, wantStemmed)
	}

	wantBigrams := []Bigram{
		{"great", "vacuum"},
		{"vacuum", "clean"},
		{"clean", "carpet"},
		{"carpet", "well"},
	}
	if !reflect.DeepEqual(got.Bigrams, wantBigrams) {
		t.Errorf("Bigrams = %v, want %v", got.Bigrams, wantBigrams)
	}
}

func TestProcessEmptyText(t *testing.T) {
	p := newTestPipeline([]string{"the"})

	got := p.Process("")
	if got.Cleaned != "" {
		t.Errorf("Cleaned = %q, want empty", got.Cleaned)
	}
	if len(got.Tokens) != 0 || len(got.Filtered) != 0 || len(got.Stemmed) != 0 || len(got.Bigrams) != 0 {
		t.Errorf("empty text should yield empty sequences, got %+v", got)
	}
}

func TestProcessStopwordRemoval(t *testing.T) {
	p := newTestPipeline([]string{"the", "and", "was"})

	got := p.Process("The blender was loud and powerful")

	wantFiltered := []string{"blender", "loud", "powerful"}
	if !reflect.DeepEqual(got.Filtered, wantFiltered) {
		t.Errorf("Filtered = %v, want %v", got.Filtered, wantFiltered)
	}
	if len(got.Stemmed) != len(got.Filtered) {
		t.Errorf("stemming changed sequence length: %d vs %d", len(got.Stemmed), len(got.Filtered))
	}
}

func TestProcessHTMLAndEmoji(t *testing.T) {
	p := newTestPipeline(nil)

	got := p.Process("Amazing<br>product \U0001F600 works great")
	wantTokens := []string{"amazing", "product", "works", "great"}
	if !reflect.DeepEqual(got.Tokens, wantTokens) {
		t.Errorf("Tokens = %v, want %v", got.Tokens, wantTokens)
	}
}

func TestProcessBigramInvariant(t *testing.T) {
	p := newTestPipeline(nil)

	texts := []string{
		"",
		"word",
		"two words",
		"quite a few more words here now",
	}
	for _, text := range texts {
		got := p.Process(text)
		want := len(got.Stemmed) - 1
		if want < 0 {
			want = 0
		}
		if len(got.Bigrams) != want {
			t.Errorf("Process(%q): %d bigrams, want %d", text, len(got.Bigrams), want)
		}
	}
}

func TestProcessDeterministic(t *testing.T) {
	p := newTestPipeline([]string{"the"})

	text := "The quick brown fox <b>jumped</b> over the lazy dog \U0001F436"
	first := p.Process(text)
	for i := 0; i < 3; i++ {
		if got := p.Process(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Process not deterministic")
		}
	}
}
