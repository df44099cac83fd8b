package reader

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/internal/segmenter"
	"github.com/taiwoajasa245/pocket-pastor/internal/selection"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

// VerseUIState is the decoration state of one verse. Highlighted and
// Favorited are independent and may both be set.
type VerseUIState struct {
	Selected    bool     `json:"selected"`
	Highlighted bool     `json:"highlighted"`
	Favorited   bool     `json:"favorited"`
	InTextRange bool     `json:"in_text_range"`
	SearchTerms []string `json:"search_terms,omitempty"`
}

// Scroll asks the client to bring a verse into view after DelayMS
// milliseconds.
type Scroll struct {
	Verse    string `json:"verse"`
	Block    string `json:"block"`
	Behavior string `json:"behavior"`
	DelayMS  int64  `json:"delay_ms"`
}

// View is one open chapter. All methods are safe for concurrent use; events
// are applied one at a time.
type View struct {
	mu sync.Mutex

	svc       *Service
	userID    int
	chapter   verse.Chapter
	reference string
	seg       segmenter.Result
	order     []string
	state     map[verse.Locator]*VerseUIState
	sel       *selection.Machine
	viewport  selection.Viewport
	bar       selection.Size
	scroll    *Scroll
}

func newView(svc *Service, userID int, ch verse.Chapter, reference string, seg segmenter.Result, opts Options) *View {
	v := &View{
		svc:       svc,
		userID:    userID,
		chapter:   ch,
		reference: reference,
		seg:       seg,
		state:     make(map[verse.Locator]*VerseUIState, len(seg.Verses)),
		sel:       selection.New(),
		viewport:  opts.Viewport,
		bar:       opts.Bar,
	}
	if v.bar == (selection.Size{}) {
		v.bar = selection.DefaultBar
	}
	for _, sv := range seg.Verses {
		loc := ch.Verse(sv.Number)
		if _, dup := v.state[loc]; dup {
			continue
		}
		v.order = append(v.order, sv.Number)
		v.state[loc] = &VerseUIState{}
	}
	return v
}

func (v *View) Chapter() verse.Chapter { return v.chapter }

func (v *View) Reference() string { return v.reference }

func (v *View) UserID() int { return v.userID }

// InitialScroll is the scroll request for the target verse the chapter was
// opened with, if that verse exists.
func (v *View) InitialScroll() (Scroll, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scroll == nil {
		return Scroll{}, false
	}
	return *v.scroll, true
}

// State returns a copy of the state of one verse.
func (v *View) State(number string) (VerseUIState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	st, ok := v.state[v.chapter.Verse(number)]
	if !ok {
		return VerseUIState{}, false
	}
	out := *st
	out.SearchTerms = append([]string(nil), st.SearchTerms...)
	return out, true
}

// Mode is the current selection mode.
func (v *View) Mode() selection.Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sel.Mode()
}

func (v *View) SetViewport(vp selection.Viewport, bar selection.Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport = vp
	if bar != (selection.Size{}) {
		v.bar = bar
	}
}

// TapVerse toggles a verse in the multi-select set.
func (v *View) TapVerse(number string, anchor selection.Rect) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	number = segmenter.NormalizeNumber(number)
	if _, ok := v.state[v.chapter.Verse(number)]; !ok {
		return false, ErrUnknownVerse
	}
	selected := v.sel.TapVerse(number, anchor)
	v.syncSelection()
	return selected, nil
}

// SelectText starts a free-text selection. When r.Text is empty it is taken
// from the verse text covered by the range.
func (v *View) SelectText(r selection.Range, anchor selection.Rect) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if r.StartVerse != "" || r.EndVerse != "" {
		r.StartVerse = segmenter.NormalizeNumber(r.StartVerse)
		r.EndVerse = segmenter.NormalizeNumber(r.EndVerse)
		if r.EndVerse == "" {
			r.EndVerse = r.StartVerse
		}
		if !v.hasVerse(r.StartVerse) || !v.hasVerse(r.EndVerse) {
			return false, ErrUnknownVerse
		}
		r = v.orderRange(r)
		if r.Text == "" {
			r.Text = v.rangeText(r)
		}
	}
	ok := v.sel.SelectText(r, anchor)
	v.syncSelection()
	return ok, nil
}

// DismissSearchHighlight removes the transient search decoration of one
// verse. Highlight and favorite state are untouched.
func (v *View) DismissSearchHighlight(number string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	st, ok := v.state[v.chapter.Verse(segmenter.NormalizeNumber(number))]
	if !ok || len(st.SearchTerms) == 0 {
		return false
	}
	st.SearchTerms = nil
	return true
}

func (v *View) hasVerse(number string) bool {
	_, ok := v.state[v.chapter.Verse(number)]
	return ok
}

func (v *View) index(number string) int {
	for i, n := range v.order {
		if n == number {
			return i
		}
	}
	return -1
}

// orderRange swaps the ends of a selection dragged backwards.
func (v *View) orderRange(r selection.Range) selection.Range {
	si, ei := v.index(r.StartVerse), v.index(r.EndVerse)
	if si > ei || (si == ei && r.StartOffset > r.EndOffset) {
		r.StartVerse, r.EndVerse = r.EndVerse, r.StartVerse
		r.StartOffset, r.EndOffset = r.EndOffset, r.StartOffset
	}
	return r
}

// spanned returns the verses a range touches with their rune bounds.
func (v *View) spanned(r selection.Range) map[string][2]int {
	out := make(map[string][2]int)
	if r.StartVerse == "" {
		return out
	}
	si, ei := v.index(r.StartVerse), v.index(r.EndVerse)
	if si < 0 || ei < 0 {
		return out
	}
	for i := si; i <= ei; i++ {
		n := v.order[i]
		sv, _ := v.seg.Find(n)
		length := len([]rune(sv.Text))
		start, end := 0, length
		if i == si {
			start = clamp(r.StartOffset, 0, length)
		}
		if i == ei {
			end = clamp(r.EndOffset, 0, length)
		}
		if end > start {
			out[n] = [2]int{start, end}
		}
	}
	return out
}

func (v *View) rangeText(r selection.Range) string {
	spans := v.spanned(r)
	parts := make([]string, 0, len(spans))
	for _, n := range v.order {
		b, ok := spans[n]
		if !ok {
			continue
		}
		sv, _ := v.seg.Find(n)
		parts = append(parts, strings.TrimSpace(string([]rune(sv.Text)[b[0]:b[1]])))
	}
	return strings.Join(parts, " ")
}

// syncSelection copies the selection machine into the verse state map.
func (v *View) syncSelection() {
	var spans map[string][2]int
	if r, ok := v.sel.Range(); ok {
		spans = v.spanned(r)
	}
	for loc, st := range v.state {
		st.Selected = v.sel.IsSelected(loc.VerseNumber)
		_, st.InTextRange = spans[loc.VerseNumber]
	}
}

// targets are the verses an action applies to: the multi-select set, or the
// verses a text range touches.
func (v *View) targets() []string {
	switch v.sel.Mode() {
	case selection.VerseMultiSelect:
		return v.sel.SelectedVerses()
	case selection.TextRange:
		r, _ := v.sel.Range()
		spans := v.spanned(r)
		out := make([]string, 0, len(spans))
		for _, n := range v.order {
			if _, ok := spans[n]; ok {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}

func (v *View) textOf(number string) string {
	sv, _ := v.seg.Find(number)
	return sv.Text
}

func (v *View) applyTarget(opts Options) {
	targets := parseTargets(opts.TargetVerse)
	if len(targets) == 0 {
		return
	}

	terms := strings.Fields(opts.Query)
	found := ""
	for _, n := range targets {
		st, ok := v.state[v.chapter.Verse(n)]
		if !ok {
			continue
		}
		if found == "" {
			found = n
		}
		if len(terms) > 0 {
			st.SearchTerms = terms
		}
	}

	if found == "" {
		v.svc.log.Warn("scroll target verse not found",
			zap.String("bible_id", v.chapter.BibleID),
			zap.String("chapter_id", v.chapter.ChapterID),
			zap.String("target", opts.TargetVerse))
		return
	}
	v.scroll = &Scroll{Verse: found, Block: "center", Behavior: "smooth", DelayMS: v.svc.scrollDelay.Milliseconds()}
}

// parseTargets expands "16", "16,17" and "16-18" into verse numbers.
func parseTargets(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			out = append(out, segmenter.NormalizeNumber(part))
			continue
		}
		a, errA := strconv.Atoi(segmenter.NormalizeNumber(strings.TrimSpace(lo)))
		b, errB := strconv.Atoi(segmenter.NormalizeNumber(strings.TrimSpace(hi)))
		if errA != nil || errB != nil || b < a || b-a > 200 {
			out = append(out, segmenter.NormalizeNumber(strings.TrimSpace(lo)))
			continue
		}
		for n := a; n <= b; n++ {
			out = append(out, strconv.Itoa(n))
		}
	}
	return verse.SortNumbers(out)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
