package parse

import "regexp"

// The raw dumps are pseudo-XML with wildly inconsistent tag spelling:
// casing varies, separators switch between "_" and spaces, close tags
// sometimes doubled or missing slashes, and several fields go by
// multiple names (rate/rating, heading/review_title, votes/likes).
// Each pattern below accepts every variant observed in the source data.
var (
	recordPattern = regexp.MustCompile(`(?is)<\s*record\s*>(.*?)<\s*/\s*record\s*>`)

	categoryPattern = regexp.MustCompile(
		`(?is)<\s*/?\s*category\s*>\s*(.*?)\s*<\s*/{0,2}\s*category\s*>`)
	reviewerIDPattern = regexp.MustCompile(
		`(?is)<\s*reviewer[\s_]*id\s*>\s*(.*?)\s*<\s*/*\s*reviewer[\s_]*id\s*>`)
	ratingPattern = regexp.MustCompile(
		`(?is)<\s*(?:rate|rating)\s*>\s*(.*?)\s*<\s*/+\s*(?:rate|rating)\s*>`)
	titlePattern = regexp.MustCompile(
		`(?is)<\s*(?:review[\s_]*title|heading)\s*>\s*(.*?)\s*<\s*/+\s*(?:review[\s_]*title|heading)\s*>`)
	textPattern = regexp.MustCompile(
		`(?is)<\s*(?:review[\s_]*text|text)\s*>\s*(.*?)\s*<\s*/*\s*(?:review[\s_]*text|text)\s*>`)
	imagesPattern = regexp.MustCompile(
		`(?is)<\s*(?:attached[\s_]*images?|pictures|pics)\s*>\s*(.*?)\s*<\s*/+\s*(?:attached[\s_]*images?|pictures|pics)\s*>`)
	productIDPattern = regexp.MustCompile(
		`(?is)<\s*product[\s_]*id\s*>\s*(.*?)\s*<\s*/*\s*product[\s_]*id\s*>`)
	parentProductIDPattern = regexp.MustCompile(
		`(?is)<\s*parent[\s_]*product[\s_]*id\s*>\s*(.*?)\s*<\s*/*\s*parent[\s_]*product[\s_]*id\s*>`)
	timestampPattern = regexp.MustCompile(
		`(?is)<\s*(?:review[\s_]*timestamp|timestamp|date|time)\s*>\s*(.*?)\s*<\s*/+\s*(?:review[\s_]*timestamp|timestamp|date|time)\s*>`)
	verifiedPattern = regexp.MustCompile(
		`(?is)<\s*(?:is[\s_]*)?verified[\s_]*purchase\s*>\s*(.*?)\s*<\s*/+\s*(?:is[\s_]*)?verified[\s_]*purchase\s*>`)
	votesPattern = regexp.MustCompile(
		`(?is)<\s*(?:helpful[\s_]*votes?|votes?|likes)\s*>\s*(.*?)\s*<\s*/+\s*(?:helpful[\s_]*votes?|votes?|likes)\s*>`)
)

// extract returns the first capture group, or the placeholder when the
// field is absent from the block.
func extract(p *regexp.Regexp, block string) string {
	m := p.FindStringSubmatch(block)
	if m == nil {
		return None
	}
	return orNone(m[1])
}
