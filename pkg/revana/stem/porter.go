// Package stem implements the Porter stemming algorithm.
//
// Stemming is a pure per-token function: the same token always maps to
// the same stem, with no cross-token context. Tokens that are not
// lowercase ASCII words are returned unchanged.
package stem

// Stem returns the Porter stem of word ("cleaning" -> "clean",
// "carpets" -> "carpet"). Words of length <= 2 are returned as-is.
func Stem(word string) string {
	if len(word) <= 2 {
		return word
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return word
		}
	}

	s := &stemmer{b: []byte(word), k: len(word) - 1}
	s.step1a()
	s.step1b()
	s.step1c()
	s.step2()
	s.step3()
	s.step4()
	s.step5()
	return string(s.b[:s.k+1])
}

// All stems every token in a sequence, preserving order and length.
func All(tokens []string) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Stem(t)
	}
	return out
}

// stemmer holds the working buffer. k is the index of the last letter
// of the current word; j marks the end of the stem after a suffix match.
type stemmer struct {
	b []byte
	j int
	k int
}

// cons reports whether b[i] is a consonant. 'y' is a consonant when it
// starts the word or follows a vowel.
func (s *stemmer) cons(i int) bool {
	switch s.b[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		if i == 0 {
			return true
		}
		return !s.cons(i - 1)
	}
	return true
}

// m measures the number of consonant-vowel sequences in b[0..j].
func (s *stemmer) m() int {
	n, i := 0, 0
	for {
		if i > s.j {
			return n
		}
		if !s.cons(i) {
			break
		}
		i++
	}
	i++
	for {
		for {
			if i > s.j {
				return n
			}
			if s.cons(i) {
				break
			}
			i++
		}
		i++
		n++
		for {
			if i > s.j {
				return n
			}
			if !s.cons(i) {
				break
			}
			i++
		}
		i++
	}
}

func (s *stemmer) vowelInStem() bool {
	for i := 0; i <= s.j; i++ {
		if !s.cons(i) {
			return true
		}
	}
	return false
}

// doubleC reports whether b[i-1..i] is a double consonant.
func (s *stemmer) doubleC(i int) bool {
	if i < 1 {
		return false
	}
	return s.b[i] == s.b[i-1] && s.cons(i)
}

// cvc reports whether b[i-2..i] is consonant-vowel-consonant where the
// final consonant is not w, x or y. Used to restore a trailing "e"
// (hop -> hop, fil -> file).
func (s *stemmer) cvc(i int) bool {
	if i < 2 || !s.cons(i) || s.cons(i-1) || !s.cons(i-2) {
		return false
	}
	ch := s.b[i]
	return ch != 'w' && ch != 'x' && ch != 'y'
}

// ends reports whether the word ends with suffix, setting j on match.
func (s *stemmer) ends(suffix string) bool {
	o := s.k - len(suffix) + 1
	if o < 0 {
		return false
	}
	for i := 0; i < len(suffix); i++ {
		if s.b[o+i] != suffix[i] {
			return false
		}
	}
	s.j = s.k - len(suffix)
	return true
}

// setTo replaces the matched suffix with repl.
func (s *stemmer) setTo(repl string) {
	o := s.j + 1
	for i := 0; i < len(repl); i++ {
		s.b[o+i] = repl[i]
	}
	s.k = s.j + len(repl)
}

func (s *stemmer) r(repl string) {
	if s.m() > 0 {
		s.setTo(repl)
	}
}

// step1a handles plurals: caresses -> caress, ponies -> poni, cats -> cat.
func (s *stemmer) step1a() {
	if s.b[s.k] != 's' {
		return
	}
	switch {
	case s.ends("sses"):
		s.k -= 2
	case s.ends("ies"):
		s.setTo("i")
	case s.b[s.k-1] != 's':
		s.k--
	}
}

// step1b handles -ed and -ing: plastered -> plaster, motoring -> motor,
// hopping -> hop, filing -> file.
func (s *stemmer) step1b() {
	if s.ends("eed") {
		if s.m() > 0 {
			s.k--
		}
		return
	}
	if (s.ends("ed") || s.ends("ing")) && s.vowelInStem() {
		s.k = s.j
		switch {
		case s.ends("at"):
			s.setTo("ate")
		case s.ends("bl"):
			s.setTo("ble")
		case s.ends("iz"):
			s.setTo("ize")
		case s.doubleC(s.k):
			s.k--
			ch := s.b[s.k]
			if ch == 'l' || ch == 's' || ch == 'z' {
				s.k++
			}
		default:
			if s.m() == 1 && s.cvc(s.k) {
				s.j = s.k
				s.setTo("e")
			}
		}
	}
}

// step1c turns terminal y to i when there is a vowel in the stem.
func (s *stemmer) step1c() {
	if s.ends("y") && s.vowelInStem() {
		s.b[s.k] = 'i'
	}
}

var step2Rules = []struct{ suffix, repl string }{
	{"ational", "ate"},
	{"tional", "tion"},
	{"enci", "ence"},
	{"anci", "ance"},
	{"izer", "ize"},
	{"bli", "ble"},
	{"alli", "al"},
	{"entli", "ent"},
	{"eli", "e"},
	{"ousli", "ous"},
	{"ization", "ize"},
	{"ation", "ate"},
	{"ator", "ate"},
	{"alism", "al"},
	{"iveness", "ive"},
	{"fulness", "ful"},
	{"ousness", "ous"},
	{"aliti", "al"},
	{"iviti", "ive"},
	{"biliti", "ble"},
	{"logi", "log"},
}

// step2 maps double suffixes to single ones when m > 0.
func (s *stemmer) step2() {
	for _, rule := range step2Rules {
		if s.ends(rule.suffix) {
			s.r(rule.repl)
			return
		}
	}
}

var step3Rules = []struct{ suffix, repl string }{
	{"icate", "ic"},
	{"ative", ""},
	{"alize", "al"},
	{"iciti", "ic"},
	{"ical", "ic"},
	{"ful", ""},
	{"ness", ""},
}

// step3 deals with -ic-, -full, -ness etc.
func (s *stemmer) step3() {
	for _, rule := range step3Rules {
		if s.ends(rule.suffix) {
			s.r(rule.repl)
			return
		}
	}
}

var step4Suffixes = []string{
	"al", "ance", "ence", "er", "ic", "able", "ible", "ant",
	"ement", "ment", "ent", "ion", "ou", "ism", "ate", "iti",
	"ous", "ive", "ize",
}

// step4 removes residual suffixes when m > 1.
func (s *stemmer) step4() {
	for _, suffix := range step4Suffixes {
		if !s.ends(suffix) {
			continue
		}
		if suffix == "ion" {
			// -ion only drops after s or t (adhesion, adoption)
			if s.j < 0 || (s.b[s.j] != 's' && s.b[s.j] != 't') {
				continue
			}
		}
		if s.m() > 1 {
			s.k = s.j
		}
		return
	}
}

// step5 removes a final -e and reduces -ll when m > 1.
func (s *stemmer) step5() {
	s.j = s.k
	if s.b[s.k] == 'e' {
		a := s.m()
		if a > 1 || (a == 1 && !s.cvc(s.k-1)) {
			s.k--
		}
	}
	if s.b[s.k] == 'l' && s.doubleC(s.k) && s.m() > 1 {
		s.k--
	}
}
