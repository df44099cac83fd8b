package highlight

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

// memoryRepository keeps marks in process memory. It backs `serve --memory`
// and tests that do not need Postgres.
type memoryRepository struct {
	mu    sync.Mutex
	marks map[int]map[string]Mark
}

func NewMemoryRepository() Repository {
	return &memoryRepository{marks: make(map[int]map[string]Mark)}
}

func (r *memoryRepository) ListChapter(_ context.Context, userID int, ch verse.Chapter) ([]Mark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Mark
	for _, m := range r.marks[userID] {
		if m.BibleID == ch.BibleID && m.ChapterID == ch.ChapterID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) Save(_ context.Context, userID int, loc verse.Locator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.marks[userID]
	if !ok {
		user = make(map[string]Mark)
		r.marks[userID] = user
	}
	if _, exists := user[loc.Key()]; exists {
		return nil
	}
	user[loc.Key()] = Mark{
		UserID:      userID,
		BibleID:     loc.BibleID,
		ChapterID:   loc.ChapterID,
		VerseNumber: loc.VerseNumber,
		CreatedAt:   time.Now(),
	}
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, userID int, loc verse.Locator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.marks[userID], loc.Key())
	return nil
}

func (r *memoryRepository) DeleteMany(_ context.Context, userID int, ch verse.Chapter, numbers []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, num := range numbers {
		key := ch.Verse(num).Key()
		if _, ok := r.marks[userID][key]; ok {
			delete(r.marks[userID], key)
			n++
		}
	}
	return n, nil
}
