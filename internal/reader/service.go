// Package reader keeps the per-verse UI state of an open chapter and renders
// it as decorated HTML.
package reader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taiwoajasa245/pocket-pastor/internal/bible"
	"github.com/taiwoajasa245/pocket-pastor/internal/chat"
	"github.com/taiwoajasa245/pocket-pastor/internal/cluster"
	"github.com/taiwoajasa245/pocket-pastor/internal/highlight"
	"github.com/taiwoajasa245/pocket-pastor/internal/segmenter"
	"github.com/taiwoajasa245/pocket-pastor/internal/selection"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

var (
	ErrUnknownVerse = errors.New("verse not in chapter")
	ErrNotSegmented = errors.New("chapter has no addressable verses")
)

type Deps struct {
	Bible       bible.Provider
	Segmenter   *segmenter.Segmenter
	Highlights  *highlight.Service
	Clusters    *cluster.Service
	Chat        chat.Handoff
	ScrollDelay time.Duration
	Log         *zap.Logger
}

type Service struct {
	bible       bible.Provider
	segmenter   *segmenter.Segmenter
	highlights  *highlight.Service
	clusters    *cluster.Service
	chat        chat.Handoff
	scrollDelay time.Duration
	log         *zap.Logger
}

func NewService(d Deps) *Service {
	log := logger.OrNop(d.Log)
	seg := d.Segmenter
	if seg == nil {
		seg = segmenter.New(log)
	}
	return &Service{
		bible:       d.Bible,
		segmenter:   seg,
		highlights:  d.Highlights,
		clusters:    d.Clusters,
		chat:        d.Chat,
		scrollDelay: d.ScrollDelay,
		log:         log,
	}
}

// Options describe how a chapter was opened. TargetVerse accepts a single
// number, a list ("16,17") or a range ("16-18"). Query terms are decorated
// within the target verses.
type Options struct {
	TargetVerse string
	Query       string
	Viewport    selection.Viewport
	Bar         selection.Size
}

// Load fetches the chapter text and the user's highlight and cluster
// membership concurrently, then builds the view.
func (s *Service) Load(ctx context.Context, userID int, ch verse.Chapter, opts Options) (*View, error) {
	var (
		chapter    *bible.Chapter
		highlights verse.Set
		favorites  verse.Set
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.bible.GetChapter(gctx, ch.BibleID, ch.ChapterID)
		if err != nil {
			return fmt.Errorf("get chapter: %w", err)
		}
		chapter = c
		return nil
	})
	g.Go(func() error {
		highlights = s.highlights.LoadChapterHighlights(gctx, userID, ch)
		return nil
	})
	g.Go(func() error {
		favorites = s.clusters.GetClusterVerseNumbers(gctx, userID, ch)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seg := s.segmenter.Segment(chapter.Text)
	reference := chapter.Reference
	if reference == "" {
		reference = ch.ChapterID
	}

	v := newView(s, userID, ch, reference, seg, opts)
	for loc, st := range v.state {
		st.Highlighted = highlights.Has(loc.VerseNumber)
		st.Favorited = favorites.Has(loc.VerseNumber)
	}
	v.applyTarget(opts)
	return v, nil
}
