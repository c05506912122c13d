package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tok := NewTokenizer(DefaultMinTokenLen)

	got := tok.Tokenize("great vacuum cleans carpets well")
	want := []string{"great", "vacuum", "cleans", "carpets", "well"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeMinLength(t *testing.T) {
	tok := NewTokenizer(3)

	got := tok.Tokenize("it is a top of the line fan")
	// "it", "is", "a", "of" are shorter than 3 letters
	want := []string{"top", "the", "line", "fan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeNoMinLength(t *testing.T) {
	tok := NewTokenizer(0)

	got := tok.Tokenize("a b c")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeDigitsSplit(t *testing.T) {
	tok := NewTokenizer(3)

	// Letter runs only: digits act as separators.
	got := tok.Tokenize("usb3 cable works100percent")
	want := []string{"usb", "cable", "works", "percent"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeCaseNormalization(t *testing.T) {
	tok := NewTokenizer(3)

	for _, token := range tok.Tokenize("GREAT Vacuum CleanS") {
		if token != strings.ToLower(token) {
			t.Errorf("token %q should be lowercase", token)
		}
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	tok := NewTokenizer(3)

	if got := tok.Tokenize(""); len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", got)
	}
	if got := tok.Tokenize("!!! 123 .."); len(got) != 0 {
		t.Errorf("Tokenize(punct) = %v, want empty", got)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	tok := NewTokenizer(3)

	text := "Great vacuum! Cleans carpets, well..."
	first := tok.Tokenize(text)
	for i := 0; i < 3; i++ {
		if got := tok.Tokenize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tokenize not deterministic: %v vs %v", got, first)
		}
	}
}

func TestTokenizeOrderPreserved(t *testing.T) {
	tok := NewTokenizer(3)

	got := tok.Tokenize("first second third fourth")
	want := []string{"first", "second", "third", "fourth"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
