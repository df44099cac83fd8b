package segmenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(vs []Verse) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Number)
	}
	return out
}

func TestSegmentBareLeadingNumbers(t *testing.T) {
	raw := "16 For God so loved the world... 17 For God did not send his Son..."

	res := New(nil).Segment(raw)

	require.True(t, res.Segmented)
	assert.Equal(t, ConventionBareNumber, res.Convention)
	assert.Equal(t, []string{"16", "17"}, numbers(res.Verses))
	assert.Equal(t, "For God so loved the world...", res.Verses[0].Text)
	assert.Equal(t, "For God did not send his Son...", res.Verses[1].Text)
	assert.Contains(t, res.HTML, `data-verse="16"`)
	assert.Contains(t, res.HTML, `data-verse="17"`)
}

func TestSegmentConventions(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		convention Convention
		want       []string
		firstText  string
	}{
		{
			name:       "sup markup",
			raw:        `<p><sup>1</sup>In the beginning God created.<sup class="v">2</sup>And the earth</p>`,
			convention: ConventionTagged,
			want:       []string{"1", "2"},
			firstText:  "In the beginning God created.",
		},
		{
			name:       "span verse class",
			raw:        `<span data-number="16" class="v">16</span>For God so loved <span class="v">17</span>For God sent`,
			convention: ConventionTagged,
			want:       []string{"16", "17"},
			firstText:  "For God so loved",
		},
		{
			name:       "usfm",
			raw:        `\v 1 In the beginning \v 2 And the earth`,
			convention: ConventionTagged,
			want:       []string{"1", "2"},
			firstText:  "In the beginning",
		},
		{
			name:       "brackets",
			raw:        "[1] In the beginning. [2] And the earth",
			convention: ConventionBracket,
			want:       []string{"1", "2"},
			firstText:  "In the beginning.",
		},
		{
			name:       "parentheses",
			raw:        "(1) In the beginning (2) And the earth",
			convention: ConventionParen,
			want:       []string{"1", "2"},
			firstText:  "In the beginning",
		},
		{
			name:       "sentence fallback",
			raw:        "16 for God so loved the world. 17 for God sent not his Son.",
			convention: ConventionSentence,
			want:       []string{"16", "17"},
			firstText:  "for God so loved the world.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(nil).Segment(tt.raw)
			require.True(t, res.Segmented)
			assert.Equal(t, tt.convention, res.Convention)
			assert.Equal(t, tt.want, numbers(res.Verses))
			assert.Equal(t, tt.firstText, res.Verses[0].Text)
		})
	}
}

func TestSegmentNeverMixesConventions(t *testing.T) {
	res := New(nil).Segment("<sup>1</sup>In the beginning [2] God")

	require.Len(t, res.Verses, 1)
	assert.Equal(t, "In the beginning [2] God", res.Verses[0].Text)
}

func TestSegmentLocaleDigits(t *testing.T) {
	res := New(nil).Segment("[١٦] وقال [١٧] ثم")

	require.True(t, res.Segmented)
	assert.Equal(t, []string{"16", "17"}, numbers(res.Verses))
	assert.Equal(t, "١٦", res.Verses[0].Marker)
	assert.Contains(t, res.HTML, `data-verse="16"><span class="verse-number">١٦</span>`)
}

func TestSegmentBareNumbersInCaselessScript(t *testing.T) {
	res := New(nil).Segment("१६ क्योंकि परमेश्वर ने जगत से ऐसा प्रेम रखा। १७ परमेश्वर ने अपने पुत्र को भेजा।")

	require.True(t, res.Segmented)
	assert.Equal(t, ConventionBareNumber, res.Convention)
	assert.Equal(t, []string{"16", "17"}, numbers(res.Verses))
	assert.Equal(t, "क्योंकि परमेश्वर ने जगत से ऐसा प्रेम रखा।", res.Verses[0].Text)
	assert.Equal(t, "१७", res.Verses[1].Marker)
}

func TestSegmentSentenceFallbackOnArabicTerminator(t *testing.T) {
	res := New(nil).Segment("١٦. قال الرب لموسى؟ ١٧. ثم ذهب موسى.")

	require.True(t, res.Segmented)
	assert.Equal(t, ConventionSentence, res.Convention)
	assert.Equal(t, []string{"16", "17"}, numbers(res.Verses))
	assert.Equal(t, "قال الرب لموسى؟", res.Verses[0].Text)
}

func TestSegmentBareIgnoresNumbersOutOfSequence(t *testing.T) {
	res := New(nil).Segment("16 For God so loved. 17 He sent them into 2 Cities of Judah. 18 He that believeth.")

	require.Equal(t, []string{"16", "17", "18"}, numbers(res.Verses))
	assert.Equal(t, "He sent them into 2 Cities of Judah.", res.Verses[1].Text)
}

func TestSegmentBareKeepsEmptyVerse(t *testing.T) {
	res := New(nil).Segment("15 And he spake. 16 17 For God sent not his Son.")

	require.Equal(t, []string{"15", "16", "17"}, numbers(res.Verses))
	assert.Equal(t, "And he spake.", res.Verses[0].Text)
	assert.Equal(t, "", res.Verses[1].Text)
	assert.Contains(t, res.HTML, `data-verse="16"><span class="verse-number">16</span><span class="verse-text"></span></div>`)
	assert.Equal(t, "For God sent not his Son.", res.Verses[2].Text)
}

func TestSegmentKeepsEmptyVerse(t *testing.T) {
	res := New(nil).Segment("<sup>16</sup><sup>17</sup>For God sent")

	require.Equal(t, []string{"16", "17"}, numbers(res.Verses))
	assert.Equal(t, "", res.Verses[0].Text)
	assert.Contains(t, res.HTML, `data-verse="16"><span class="verse-number">16</span><span class="verse-text"></span></div>`)
}

func TestSegmentPreamble(t *testing.T) {
	res := New(nil).Segment("A Psalm of David. [1] The Lord is my shepherd")

	assert.Equal(t, "A Psalm of David.", res.Preamble)
	assert.Equal(t, []string{"1"}, numbers(res.Verses))
	assert.True(t, strings.HasPrefix(res.HTML, `<div class="verse-preamble">A Psalm of David.</div>`))
}

func TestSegmentWithoutMarkersReturnsOriginal(t *testing.T) {
	raw := "In the beginning God created the heaven and the earth."

	res := New(nil).Segment(raw)

	assert.False(t, res.Segmented)
	assert.Equal(t, raw, res.HTML)
	assert.Empty(t, res.Verses)
}

func TestSegmentEscapesText(t *testing.T) {
	res := New(nil).Segment("[1] Bread <b>&amp;</b> wine")

	require.Len(t, res.Verses, 1)
	assert.Equal(t, "Bread & wine", res.Verses[0].Text)
	assert.Contains(t, res.HTML, "Bread &amp; wine")
}

func TestSegmentIsIdempotentOnSegmentedInput(t *testing.T) {
	s := New(nil)
	first := s.Segment("16 For God so loved the world. 17 For God did not send his Son.")
	require.True(t, first.Segmented)

	second := s.Segment(first.HTML)

	assert.Equal(t, ConventionSegmented, second.Convention)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, strings.Count(first.HTML, "verse-number"), strings.Count(second.HTML, "verse-number"))
	assert.Equal(t, first.Verses, second.Verses)
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "3", NormalizeNumber("٣"))
	assert.Equal(t, "12", NormalizeNumber("１２"))
	assert.Equal(t, "7", NormalizeNumber("007"))
	assert.Equal(t, "0", NormalizeNumber("0"))
	assert.Equal(t, "45", NormalizeNumber("४५"))
}

func TestParseDecoratedFragment(t *testing.T) {
	frag := `<div class="verse-container highlighted" data-verse="3"><span class="verse-number">3</span>` +
		`<span class="verse-text">Let there be <mark class="search-highlight">light</mark></span></div>`

	verses := Parse(frag)

	require.Len(t, verses, 1)
	assert.Equal(t, Verse{Number: "3", Marker: "3", Text: "Let there be light"}, verses[0])
}
