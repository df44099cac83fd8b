// Package selection tracks which verses or text range a reader has selected.
package selection

import (
	"strings"

	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

type Mode int

const (
	Idle Mode = iota
	VerseMultiSelect
	TextRange
)

func (m Mode) String() string {
	switch m {
	case VerseMultiSelect:
		return "verse-multi-select"
	case TextRange:
		return "text-range"
	default:
		return "idle"
	}
}

// Range is a free-text selection in verse coordinates. Offsets count runes
// within the verse text; EndOffset is exclusive.
type Range struct {
	StartVerse  string `json:"start_verse"`
	StartOffset int    `json:"start_offset"`
	EndVerse    string `json:"end_verse"`
	EndOffset   int    `json:"end_offset"`
	Text        string `json:"text"`
}

// Machine is the selection state machine. The zero value is Idle and ready
// to use. It is not safe for concurrent use.
type Machine struct {
	mode      Mode
	verses    map[string]struct{}
	textRange Range
	anchor    Rect
}

func New() *Machine {
	return &Machine{}
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// TapVerse toggles verse membership in the multi-select set and reports
// whether the verse is selected afterwards. Any text range is discarded.
func (m *Machine) TapVerse(number string, anchor Rect) bool {
	if m.mode == TextRange {
		m.reset()
	}
	if m.verses == nil {
		m.verses = make(map[string]struct{})
	}

	_, had := m.verses[number]
	if had {
		delete(m.verses, number)
	} else {
		m.verses[number] = struct{}{}
	}

	if len(m.verses) == 0 {
		m.reset()
		return false
	}
	m.mode = VerseMultiSelect
	m.anchor = anchor
	return !had
}

// SelectText enters TextRange, discarding any verse set. A blank selection
// is treated as a collapsed browser selection and clears the state.
func (m *Machine) SelectText(r Range, anchor Rect) bool {
	m.reset()
	if strings.TrimSpace(r.Text) == "" {
		return false
	}
	m.mode = TextRange
	m.textRange = r
	m.anchor = anchor
	return true
}

// Cancel returns to Idle.
func (m *Machine) Cancel() {
	m.reset()
}

// Commit returns to Idle after an action completes.
func (m *Machine) Commit() {
	m.reset()
}

func (m *Machine) reset() {
	m.mode = Idle
	m.verses = nil
	m.textRange = Range{}
	m.anchor = Rect{}
}

func (m *Machine) IsSelected(number string) bool {
	_, ok := m.verses[number]
	return ok && m.mode == VerseMultiSelect
}

// SelectedVerses returns the multi-select set in document order.
func (m *Machine) SelectedVerses() []string {
	if m.mode != VerseMultiSelect {
		return nil
	}
	numbers := make([]string, 0, len(m.verses))
	for n := range m.verses {
		numbers = append(numbers, n)
	}
	return verse.SortNumbers(numbers)
}

func (m *Machine) Range() (Range, bool) {
	return m.textRange, m.mode == TextRange
}

// Anchor is the bounding rectangle of the most recently touched element.
func (m *Machine) Anchor() (Rect, bool) {
	return m.anchor, m.mode != Idle
}

// SelectedText joins the rendered text of each selected verse with spaces,
// or returns the raw range text in TextRange mode.
func (m *Machine) SelectedText(lookup func(number string) string) string {
	switch m.mode {
	case TextRange:
		return m.textRange.Text
	case VerseMultiSelect:
		parts := make([]string, 0, len(m.verses))
		for _, n := range m.SelectedVerses() {
			if t := strings.TrimSpace(lookup(n)); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}
