// Package segmenter turns raw chapter text into addressable per-verse HTML.
package segmenter

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

// Verse is one segmented verse. Number is ASCII-normalized; Marker keeps the
// digits as they appeared upstream.
type Verse struct {
	Number string `json:"verse_number"`
	Marker string `json:"marker"`
	Text   string `json:"text"`
}

// Result is the outcome of segmenting one chapter. When Segmented is false
// HTML holds the original text and verse-level addressing is unavailable.
type Result struct {
	HTML       string     `json:"html"`
	Verses     []Verse    `json:"verses"`
	Preamble   string     `json:"preamble,omitempty"`
	Convention Convention `json:"-"`
	Segmented  bool       `json:"segmented"`
}

// Find returns the verse with the given normalized number.
func (r Result) Find(number string) (Verse, bool) {
	for _, v := range r.Verses {
		if v.Number == number {
			return v, true
		}
	}
	return Verse{}, false
}

type Segmenter struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Segmenter {
	return &Segmenter{log: logger.OrNop(log)}
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Segment never panics. Input that is already segmented is returned as-is.
func (s *Segmenter) Segment(raw string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("segmentation panicked, returning raw text", zap.Any("panic", r))
			res = Result{HTML: raw}
		}
	}()

	if segmentedProbe.MatchString(raw) {
		if verses := Parse(raw); len(verses) > 0 {
			return Result{HTML: raw, Verses: verses, Convention: ConventionSegmented, Segmented: true}
		}
	}

	for _, st := range strategies {
		markers := st.find(raw)
		if len(markers) == 0 {
			continue
		}
		res = s.split(raw, markers)
		res.Convention = st.convention
		s.log.Debug("segmented chapter",
			zap.Stringer("convention", st.convention),
			zap.Int("verses", len(res.Verses)))
		return res
	}

	s.log.Warn("no verse markers detected", zap.Int("length", len(raw)))
	return Result{HTML: raw}
}

func (s *Segmenter) split(raw string, markers []marker) Result {
	res := Result{Segmented: true}

	if pre := cleanText(raw[:markers[0].start]); pre != "" {
		res.Preamble = pre
		s.log.Warn("unnumbered text before first verse marker", zap.String("preamble", truncate(pre, 60)))
	}

	for i, m := range markers {
		end := len(raw)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		res.Verses = append(res.Verses, Verse{
			Number: NormalizeNumber(m.digits),
			Marker: m.digits,
			Text:   cleanText(raw[m.end:end]),
		})
	}

	var b strings.Builder
	if res.Preamble != "" {
		fmt.Fprintf(&b, `<div class="verse-preamble">%s</div>`, html.EscapeString(res.Preamble))
	}
	for _, v := range res.Verses {
		WriteVerse(&b, v, nil, html.EscapeString(v.Text))
	}
	res.HTML = b.String()
	return res
}

// WriteVerse writes one verse container. textHTML must already be escaped.
func WriteVerse(b *strings.Builder, v Verse, classes []string, textHTML string) {
	class := "verse-container"
	if len(classes) > 0 {
		class += " " + strings.Join(classes, " ")
	}
	fmt.Fprintf(b, `<div class="%s" data-verse="%s"><span class="verse-number">%s</span><span class="verse-text">%s</span></div>`,
		class, html.EscapeString(v.Number), html.EscapeString(v.Marker), textHTML)
}

func cleanText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
