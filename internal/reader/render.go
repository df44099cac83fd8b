package reader

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/taiwoajasa245/pocket-pastor/internal/segmenter"
)

const (
	classSelected    = "selected"
	classHighlighted = "highlighted"
	classClustered   = "clustered"
)

type VerseView struct {
	Number string `json:"verse_number"`
	VerseUIState
}

// Rendered is the projection of a view's state.
type Rendered struct {
	BibleID   string      `json:"bible_id"`
	ChapterID string      `json:"chapter_id"`
	Reference string      `json:"reference"`
	Segmented bool        `json:"segmented"`
	Mode      string      `json:"mode"`
	HTML      string      `json:"html"`
	Verses    []VerseView `json:"verses"`
	ActionBar ActionBar   `json:"action_bar"`
}

// Render projects the verse state map into chapter HTML. It does not change
// the view.
func (v *View) Render() Rendered {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.render()
}

func (v *View) render() Rendered {
	out := Rendered{
		BibleID:   v.chapter.BibleID,
		ChapterID: v.chapter.ChapterID,
		Reference: v.reference,
		Segmented: v.seg.Segmented,
		Mode:      v.sel.Mode().String(),
		Verses:    make([]VerseView, 0, len(v.order)),
		ActionBar: v.actionBar(),
	}
	if !v.seg.Segmented {
		out.HTML = v.seg.HTML
		return out
	}

	var spans map[string][2]int
	if r, ok := v.sel.Range(); ok {
		spans = v.spanned(r)
	}

	var b strings.Builder
	if v.seg.Preamble != "" {
		fmt.Fprintf(&b, `<div class="verse-preamble">%s</div>`, html.EscapeString(v.seg.Preamble))
	}
	for _, n := range v.order {
		st := v.state[v.chapter.Verse(n)]
		sv, _ := v.seg.Find(n)

		var classes []string
		if st.Selected {
			classes = append(classes, classSelected)
		}
		if st.Highlighted {
			classes = append(classes, classHighlighted)
		}
		if st.Favorited {
			classes = append(classes, classClustered)
		}

		span, inRange := spans[n]
		if !inRange {
			span = [2]int{-1, -1}
		}
		segmenter.WriteVerse(&b, sv, classes, decorate(sv.Text, span, st.SearchTerms))

		view := VerseView{Number: n, VerseUIState: *st}
		view.SearchTerms = append([]string(nil), st.SearchTerms...)
		out.Verses = append(out.Verses, view)
	}
	out.HTML = b.String()
	return out
}

// decorate escapes text and wraps the rune span [span[0], span[1]) in a
// temp-selection mark and each case-insensitive occurrence of terms in a
// search-highlight mark.
func decorate(text string, span [2]int, terms []string) string {
	runes := []rune(text)
	inRange := make([]bool, len(runes))
	for i := span[0]; i >= 0 && i < span[1] && i < len(runes); i++ {
		inRange[i] = true
	}
	inSearch := matchTerms(runes, terms)

	var b strings.Builder
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && inRange[j] == inRange[i] && inSearch[j] == inSearch[i] {
			j++
		}
		chunk := html.EscapeString(string(runes[i:j]))
		if inSearch[i] {
			chunk = `<mark class="search-highlight">` + chunk + `</mark>`
		}
		if inRange[i] {
			chunk = `<mark class="temp-selection">` + chunk + `</mark>`
		}
		b.WriteString(chunk)
		i = j
	}
	return b.String()
}

func matchTerms(runes []rune, terms []string) []bool {
	marks := make([]bool, len(runes))
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}
	for _, term := range terms {
		t := []rune(strings.ToLower(term))
		if len(t) == 0 {
			continue
		}
		for i := 0; i+len(t) <= len(lower); i++ {
			if equalRunes(lower[i:i+len(t)], t) {
				for k := i; k < i+len(t); k++ {
					marks[k] = true
				}
			}
		}
	}
	return marks
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
