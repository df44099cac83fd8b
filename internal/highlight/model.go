package highlight

import "time"

// Mark is a persisted "permanently highlighted" flag for one verse.
type Mark struct {
	UserID      int       `json:"user_id,omitempty"`
	BibleID     string    `json:"bible_id"`
	ChapterID   string    `json:"chapter_id"`
	VerseNumber string    `json:"verse_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToggleResult reports a multi-verse toggle. Highlighted is the state the
// toggle moved towards; Applied and Failed partition the requested verses.
type ToggleResult struct {
	Highlighted bool     `json:"highlighted"`
	Applied     []string `json:"applied"`
	Failed      []string `json:"failed,omitempty"`
}

func (r ToggleResult) OK() bool {
	return len(r.Failed) == 0 && len(r.Applied) > 0
}

type VerseRequest struct {
	BibleID     string `json:"bible_id"`
	ChapterID   string `json:"chapter_id"`
	VerseNumber string `json:"verse_number"`
}

type ToggleRequest struct {
	BibleID      string   `json:"bible_id"`
	ChapterID    string   `json:"chapter_id"`
	VerseNumbers []string `json:"verse_numbers"`
}
