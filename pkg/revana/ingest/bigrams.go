package ingest

// Bigram is an ordered pair of adjacent tokens. First precedes Second
// in the source sequence.
type Bigram struct {
	First  string
	Second string
}

// Joined returns the underscore-joined form used in vocabulary files
// ("great_vacuum").
func (b Bigram) Joined() string {
	return b.First + "_" + b.Second
}

// Bigrams produces every adjacent token pair (t[i], t[i+1]). Sequences
// of length 0 or 1 yield no bigrams. The result has exactly
// max(0, len(tokens)-1) entries.
func Bigrams(tokens []string) []Bigram {
	if len(tokens) < 2 {
		return nil
	}
	out := make([]Bigram, 0, len(tokens)-1)
	for i := 0; i < len(tokens)-1; i++ {
		out = append(out, Bigram{First: tokens[i], Second: tokens[i+1]})
	}
	return out
}
