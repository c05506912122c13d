// Package textclean normalizes raw review text into plain lowercase words.
package textclean

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// emojiRanges covers the Unicode blocks stripped from review text:
// emoticons, symbols & pictographs, transport & map symbols, flags,
// box drawing through misc symbols, dingbats, and enclosed characters.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x24C2, Hi: 0x24FF, Stride: 1},
		{Lo: 0x2500, Hi: 0x2BEF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
	},
}

// Policy controls the normalization applied by a Cleaner. Source
// dumps vary in their Unicode hygiene, so each pass can be toggled
// independently.
type Policy struct {
	StripHTML  bool
	StripEmoji bool
	ASCIIOnly  bool // drop any rune outside printable ASCII
	Lowercase  bool
	NFKC       bool // apply NFKC normalization before filtering
}

// DefaultPolicy matches the upstream dataset conventions: HTML removed,
// emoji removed, non-ASCII dropped, lowercased.
func DefaultPolicy() Policy {
	return Policy{
		StripHTML:  true,
		StripEmoji: true,
		ASCIIOnly:  true,
		Lowercase:  true,
		NFKC:       true,
	}
}

// Cleaner applies a fixed normalization policy to raw text.
// It is a pure function of its input; the same text always produces
// the same output.
type Cleaner struct {
	policy Policy
}

// New creates a Cleaner with the given policy.
func New(policy Policy) *Cleaner {
	return &Cleaner{policy: policy}
}

// Clean normalizes raw text: HTML markup stripped, emoji and invalid
// runes removed, whitespace collapsed, case folded. Empty input yields
// an empty string.
func (c *Cleaner) Clean(text string) string {
	if text == "" {
		return ""
	}

	if c.policy.StripHTML {
		text = StripHTML(text)
	}
	if c.policy.NFKC {
		text = norm.NFKC.String(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if c.policy.StripEmoji && unicode.Is(emojiRanges, r) {
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
			continue
		}
		if c.policy.ASCIIOnly && (r < 0x20 || r > 0x7E) {
			continue
		}
		if r == unicode.ReplacementChar {
			continue
		}
		if c.policy.Lowercase {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// StripHTML removes markup from a fragment and returns its text content.
// Malformed input falls back to the original string.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			// separate text nodes so "<br>" between words keeps a boundary
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

// IsASCII reports whether the string is entirely printable ASCII.
// The dataset treats any other review text as non-English.
func IsASCII(s string) bool {
	for _, r := range s {
		if r > 0x7F {
			return false
		}
	}
	return true
}
