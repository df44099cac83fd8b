// Package bible fetches chapter text from the configured content source.
package bible

import (
	"context"
	"errors"
)

var ErrChapterNotFound = errors.New("chapter not found")

// Chapter is the raw text of one chapter as delivered by a provider. Text is
// unsegmented and may carry any verse-marker convention.
type Chapter struct {
	BibleID   string `json:"bible_id" yaml:"-"`
	ChapterID string `json:"chapter_id" yaml:"id"`
	Reference string `json:"reference" yaml:"reference"`
	Text      string `json:"text" yaml:"text"`
}

type Provider interface {
	GetChapter(ctx context.Context, bibleID, chapterID string) (*Chapter, error)
}
