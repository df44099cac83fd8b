package cluster

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

// memoryRepository keeps clusters in process memory. It backs
// `serve --memory` and tests that do not need Postgres.
type memoryRepository struct {
	mu       sync.Mutex
	clusters map[string]*VerseCluster
}

func NewMemoryRepository() Repository {
	return &memoryRepository{clusters: make(map[string]*VerseCluster)}
}

func (r *memoryRepository) InsertCluster(_ context.Context, c *VerseCluster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.CreatedAt = time.Now()
	stored := *c
	stored.Verses = nil
	r.clusters[c.ID] = &stored
	return nil
}

func (r *memoryRepository) InsertVerses(_ context.Context, verses []ClusterVerse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range verses {
		if _, ok := r.clusters[v.ClusterID]; !ok {
			return ErrNotFound
		}
	}
	for _, v := range verses {
		c := r.clusters[v.ClusterID]
		c.Verses = append(c.Verses, v)
	}
	return nil
}

func (r *memoryRepository) DeleteCluster(_ context.Context, userID int, clusterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clusters[clusterID]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(r.clusters, clusterID)
	return nil
}

func (r *memoryRepository) ListChapter(_ context.Context, userID int, ch verse.Chapter) ([]VerseCluster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.snapshot(func(c *VerseCluster) bool {
		return c.UserID == userID && c.BibleID == ch.BibleID && c.ChapterID == ch.ChapterID
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) ListAll(_ context.Context, userID int) ([]VerseCluster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.snapshot(func(c *VerseCluster) bool { return c.UserID == userID })
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SortOrder, out[j].SortOrder
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// snapshot copies matching clusters; clusters without verses are never
// returned, matching the inner join of the SQL repository.
func (r *memoryRepository) snapshot(match func(*VerseCluster) bool) []VerseCluster {
	var out []VerseCluster
	for _, c := range r.clusters {
		if !match(c) || len(c.Verses) == 0 {
			continue
		}
		cp := *c
		cp.Verses = append([]ClusterVerse(nil), c.Verses...)
		sortVerses(cp.Verses)
		out = append(out, cp)
	}
	return out
}

func (r *memoryRepository) RemoveVerses(_ context.Context, userID int, ch verse.Chapter, numbers []string) (RemoveOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out RemoveOutcome
	want := verse.NewSet(numbers...)
	removed := verse.NewSet()
	for id, c := range r.clusters {
		if c.UserID != userID || c.BibleID != ch.BibleID || c.ChapterID != ch.ChapterID {
			continue
		}
		kept := c.Verses[:0]
		touched := false
		for _, v := range c.Verses {
			if want.Has(v.VerseNumber) {
				removed.Add(v.VerseNumber)
				touched = true
				continue
			}
			kept = append(kept, v)
		}
		c.Verses = kept
		if touched && len(c.Verses) == 0 {
			delete(r.clusters, id)
			out.DeletedClusters = append(out.DeletedClusters, id)
		}
	}
	out.Removed = removed.Sorted()
	sort.Strings(out.DeletedClusters)
	return out, nil
}

func (r *memoryRepository) UpdateSortOrder(_ context.Context, userID int, clusterID string, sortOrder int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clusters[clusterID]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	so := sortOrder
	c.SortOrder = &so
	return nil
}

func (r *memoryRepository) ChapterVerseNumbers(_ context.Context, userID int, ch verse.Chapter) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := verse.NewSet()
	for _, c := range r.clusters {
		if c.UserID == userID && c.BibleID == ch.BibleID && c.ChapterID == ch.ChapterID {
			for _, v := range c.Verses {
				set.Add(v.VerseNumber)
			}
		}
	}
	return set.Sorted(), nil
}
