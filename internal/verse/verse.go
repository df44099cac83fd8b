// Package verse holds the identifiers shared by the reader components.
package verse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Locator identifies one verse within a translation's chapter. It is unique
// only within (BibleID, ChapterID).
type Locator struct {
	BibleID     string `json:"bible_id"`
	ChapterID   string `json:"chapter_id"`
	VerseNumber string `json:"verse_number"`
}

func (l Locator) Key() string {
	return l.BibleID + "|" + l.ChapterID + "|" + l.VerseNumber
}

func (l Locator) String() string {
	return fmt.Sprintf("%s/%s:%s", l.BibleID, l.ChapterID, l.VerseNumber)
}

// Chapter scopes verse numbers to one translation's chapter.
type Chapter struct {
	BibleID   string `json:"bible_id"`
	ChapterID string `json:"chapter_id"`
}

func (c Chapter) Verse(number string) Locator {
	return Locator{BibleID: c.BibleID, ChapterID: c.ChapterID, VerseNumber: number}
}

// Less orders verse numbers numerically, falling back to string order for
// non-numeric suffixes such as "16a".
func Less(a, b string) bool {
	na, ea := strconv.Atoi(a)
	nb, eb := strconv.Atoi(b)
	switch {
	case ea == nil && eb == nil:
		return na < nb
	case ea == nil:
		return true
	case eb == nil:
		return false
	}
	return a < b
}

// SortNumbers returns a sorted, de-duplicated copy of numbers.
func SortNumbers(numbers []string) []string {
	seen := make(map[string]struct{}, len(numbers))
	out := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if _, ok := seen[n]; ok || n == "" {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// Reference builds a label such as "John 3:16,17,18".
func Reference(chapterReference string, numbers []string) string {
	return chapterReference + ":" + strings.Join(SortNumbers(numbers), ",")
}
