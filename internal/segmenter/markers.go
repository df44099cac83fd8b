package segmenter

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Convention names the verse-marker form detected in a chapter.
type Convention int

const (
	ConventionNone Convention = iota
	ConventionSegmented
	ConventionTagged
	ConventionBracket
	ConventionParen
	ConventionBareNumber
	ConventionSentence
)

func (c Convention) String() string {
	switch c {
	case ConventionSegmented:
		return "segmented"
	case ConventionTagged:
		return "tagged"
	case ConventionBracket:
		return "bracket"
	case ConventionParen:
		return "paren"
	case ConventionBareNumber:
		return "bare-number"
	case ConventionSentence:
		return "sentence"
	default:
		return "none"
	}
}

// marker is one detected verse number. start and end are byte offsets of the
// whole marker in the raw text; digits is the number as written.
type marker struct {
	start, end int
	digits     string
}

var (
	taggedRe = regexp.MustCompile(
		`<sup[^>]*>\s*(\p{Nd}+)\s*</sup>` +
			`|<span[^>]*\bclass="[^"]*\b(?:verse-num|vn|v)\b[^"]*"[^>]*>\s*(\p{Nd}+)\s*</span>` +
			`|\\v\s+(\p{Nd}+)\s*`)
	bracketRe = regexp.MustCompile(`\[\s*(\p{Nd}+)\s*\]\s*`)
	parenRe   = regexp.MustCompile(`\(\s*(\p{Nd}+)\s*\)\s*`)
	digitsRe  = regexp.MustCompile(`\p{Nd}+`)

	// Latin terminators need the following space; Devanagari, Arabic and CJK
	// ones are often written without it.
	sentenceEndRe  = regexp.MustCompile(`[.!?]["'”’)]*\s+|[।॥۔؟。！？]["'”’)」』]*\s*`)
	leadingNumRe   = regexp.MustCompile(`^\s*(\p{Nd}+)[\s.:)]+`)
	segmentedProbe = regexp.MustCompile(`class="[^"]*\bverse-container\b`)
)

// strategy is one convention's detector, tried in priority order.
type strategy struct {
	convention Convention
	find       func(raw string) []marker
}

var strategies = []strategy{
	{ConventionTagged, findTagged},
	{ConventionBracket, findSimple(bracketRe)},
	{ConventionParen, findSimple(parenRe)},
	{ConventionBareNumber, findBare},
	{ConventionSentence, findSentenceInitial},
}

func findTagged(raw string) []marker {
	var out []marker
	for _, m := range taggedRe.FindAllStringSubmatchIndex(raw, -1) {
		for g := 1; g <= 3; g++ {
			if m[2*g] >= 0 {
				out = append(out, marker{start: m[0], end: m[1], digits: raw[m[2*g]:m[2*g+1]]})
				break
			}
		}
	}
	return out
}

func findSimple(re *regexp.Regexp) func(string) []marker {
	return func(raw string) []marker {
		var out []marker
		for _, m := range re.FindAllStringSubmatchIndex(raw, -1) {
			out = append(out, marker{start: m[0], end: m[1], digits: raw[m[2]:m[3]]})
		}
		return out
	}
}

// maxVerseGap is how far apart consecutive bare verse numbers may be.
const maxVerseGap = 3

// bareCandidate is a number that could open a verse. chained means it is
// followed directly by another number, which makes it an empty verse.
type bareCandidate struct {
	marker
	value   int
	chained bool
}

// findBare keeps the longest run of bare numbers that increase verse by
// verse, so numbers inside the text are not taken for markers.
func findBare(raw string) []marker {
	cands := bareCandidates(raw)
	if len(cands) == 0 {
		return nil
	}

	length := make([]int, len(cands))
	prev := make([]int, len(cands))
	best := -1
	for i, c := range cands {
		length[i], prev[i] = 1, -1
		for j := 0; j < i; j++ {
			if !follows(cands, j, i) {
				continue
			}
			if length[j]+1 > length[i] {
				length[i], prev[i] = length[j]+1, j
			}
		}
		if c.chained {
			continue
		}
		if best < 0 || length[i] > length[best] {
			best = i
		}
	}
	if best < 0 {
		return nil
	}

	out := make([]marker, length[best])
	for i, k := best, len(out)-1; i >= 0; i, k = prev[i], k-1 {
		out[k] = cands[i].marker
	}
	return out
}

func follows(cands []bareCandidate, j, i int) bool {
	a, b := cands[j], cands[i]
	if a.chained {
		return i == j+1 && b.value == a.value+1
	}
	return b.value > a.value && b.value-a.value <= maxVerseGap
}

func bareCandidates(raw string) []bareCandidate {
	var out []bareCandidate
	for _, m := range digitsRe.FindAllStringIndex(raw, -1) {
		if m[0] > 0 {
			r, _ := utf8.DecodeLastRuneInString(raw[:m[0]])
			if !isMarkerBoundary(r) {
				continue
			}
		}
		rest := raw[m[1]:]
		next := strings.TrimLeftFunc(rest, unicode.IsSpace)
		if next == "" || len(next) == len(rest) {
			continue
		}
		digits := raw[m[0]:m[1]]
		value, err := strconv.Atoi(NormalizeNumber(digits))
		if err != nil {
			continue
		}

		c := bareCandidate{marker: marker{start: m[0], end: len(raw) - len(next), digits: digits}, value: value}
		first, _ := utf8.DecodeRuneInString(next)
		word, _ := utf8.DecodeRuneInString(strings.TrimLeft(next, `"'“‘(`))
		switch {
		case unicode.IsDigit(first):
			c.chained = true
		case !opensVerse(word):
			continue
		}
		out = append(out, c)
	}
	return out
}

func isMarkerBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(`.!?;:>"'”’)।॥۔؟。！？`, r)
}

// opensVerse accepts capitals and letters of caseless scripts; a lowercase
// word after a number is ordinary prose.
func opensVerse(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsTitle(r) || unicode.Is(unicode.Lo, r)
}

func findSentenceInitial(raw string) []marker {
	starts := []int{0}
	for _, m := range sentenceEndRe.FindAllStringIndex(raw, -1) {
		starts = append(starts, m[1])
	}

	var out []marker
	for _, s := range starts {
		m := leadingNumRe.FindStringSubmatchIndex(raw[s:])
		if m == nil {
			continue
		}
		out = append(out, marker{start: s + m[2], end: s + m[1], digits: raw[s+m[2] : s+m[3]]})
	}
	return out
}
