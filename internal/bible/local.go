package bible

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Translation is the on-disk layout of a bundled translation file,
// <dir>/<bible_id>.yaml.
type Translation struct {
	BibleID  string    `yaml:"bible_id"`
	Name     string    `yaml:"name"`
	Chapters []Chapter `yaml:"chapters"`
}

// LocalProvider serves chapters from YAML translation files. Files are read
// on first use and kept in memory.
type LocalProvider struct {
	dir string

	mu     sync.Mutex
	loaded map[string]map[string]Chapter
}

func NewLocalProvider(dir string) *LocalProvider {
	return &LocalProvider{dir: dir, loaded: make(map[string]map[string]Chapter)}
}

func (p *LocalProvider) GetChapter(_ context.Context, bibleID, chapterID string) (*Chapter, error) {
	chapters, err := p.translation(bibleID)
	if err != nil {
		return nil, err
	}
	ch, ok := chapters[chapterID]
	if !ok {
		return nil, ErrChapterNotFound
	}
	return &ch, nil
}

func (p *LocalProvider) translation(bibleID string) (map[string]Chapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if chapters, ok := p.loaded[bibleID]; ok {
		return chapters, nil
	}
	if bibleID == "" || filepath.Base(bibleID) != bibleID {
		return nil, ErrChapterNotFound
	}

	raw, err := os.ReadFile(filepath.Join(p.dir, bibleID+".yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrChapterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read translation %s: %w", bibleID, err)
	}

	var t Translation
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse translation %s: %w", bibleID, err)
	}

	chapters := make(map[string]Chapter, len(t.Chapters))
	for _, ch := range t.Chapters {
		ch.BibleID = bibleID
		chapters[ch.ChapterID] = ch
	}
	p.loaded[bibleID] = chapters
	return chapters, nil
}
