package cluster

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

// Service is the cluster store adapter. A zero userID means no signed-in
// identity: reads return empty results and writes report failure.
type Service struct {
	repo  Repository
	locks *verse.Locks
	log   *zap.Logger
	newID func() string
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo:  repo,
		locks: verse.NewLocks(),
		log:   logger.OrNop(log),
		newID: uuid.NewString,
	}
}

func (s *Service) lockVerses(userID int, ch verse.Chapter, numbers []string) func() {
	keys := make([]string, 0, len(numbers))
	for _, n := range numbers {
		keys = append(keys, ch.Verse(n).Key()+"|"+strconv.Itoa(userID))
	}
	return s.locks.LockAll(keys)
}

func (s *Service) GetChapterClusters(ctx context.Context, userID int, ch verse.Chapter) []VerseCluster {
	if userID == 0 {
		return nil
	}
	clusters, err := s.repo.ListChapter(ctx, userID, ch)
	if err != nil {
		s.log.Error("load chapter clusters failed",
			zap.Int("user_id", userID),
			zap.String("bible_id", ch.BibleID),
			zap.String("chapter_id", ch.ChapterID),
			zap.Error(err))
		return nil
	}
	return clusters
}

// GetAllUserClusters lists every favorite, ordered by sort order and then
// creation time.
func (s *Service) GetAllUserClusters(ctx context.Context, userID int) []VerseCluster {
	if userID == 0 {
		return nil
	}
	clusters, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		s.log.Error("load user clusters failed", zap.Int("user_id", userID), zap.Error(err))
		return nil
	}
	return clusters
}

// CreateVerseCluster inserts the cluster row and then its verses. If the
// verses cannot be inserted the cluster row is deleted again. It returns nil
// on any failure.
func (s *Service) CreateVerseCluster(ctx context.Context, userID int, ch verse.Chapter, reference string, verses []NewVerse, clusterName *string) *VerseCluster {
	if userID == 0 || len(verses) == 0 {
		return nil
	}

	numbers := make([]string, 0, len(verses))
	for _, v := range verses {
		numbers = append(numbers, v.VerseNumber)
	}
	defer s.lockVerses(userID, ch, numbers)()

	return s.create(ctx, userID, ch, reference, verses, clusterName)
}

func (s *Service) create(ctx context.Context, userID int, ch verse.Chapter, reference string, verses []NewVerse, clusterName *string) *VerseCluster {
	c := &VerseCluster{
		ID:          s.newID(),
		UserID:      userID,
		BibleID:     ch.BibleID,
		ChapterID:   ch.ChapterID,
		Reference:   reference,
		ClusterName: clusterName,
	}
	if err := s.repo.InsertCluster(ctx, c); err != nil {
		s.log.Error("create cluster failed", zap.Int("user_id", userID), zap.String("reference", reference), zap.Error(err))
		return nil
	}

	for _, v := range verses {
		c.Verses = append(c.Verses, ClusterVerse{
			ID:             s.newID(),
			ClusterID:      c.ID,
			VerseNumber:    v.VerseNumber,
			VerseText:      v.VerseText,
			VerseReference: v.VerseReference,
		})
	}
	sortVerses(c.Verses)

	if err := s.repo.InsertVerses(ctx, c.Verses); err != nil {
		s.log.Error("insert cluster verses failed, removing cluster",
			zap.String("cluster_id", c.ID),
			zap.Error(err))
		if delErr := s.repo.DeleteCluster(ctx, userID, c.ID); delErr != nil {
			s.log.Error("compensating cluster delete failed", zap.String("cluster_id", c.ID), zap.Error(delErr))
		}
		return nil
	}
	return c
}

// RemoveVerseFromCluster removes the verse from its cluster and deletes the
// cluster when that was its last verse. Removing a verse that is in no
// cluster succeeds without changes.
func (s *Service) RemoveVerseFromCluster(ctx context.Context, userID int, loc verse.Locator) RemoveResult {
	if userID == 0 {
		return RemoveResult{}
	}
	ch := verse.Chapter{BibleID: loc.BibleID, ChapterID: loc.ChapterID}
	defer s.lockVerses(userID, ch, []string{loc.VerseNumber})()

	return s.remove(ctx, userID, loc)
}

// remove expects the caller to hold the verse lock.
func (s *Service) remove(ctx context.Context, userID int, loc verse.Locator) RemoveResult {
	ch := verse.Chapter{BibleID: loc.BibleID, ChapterID: loc.ChapterID}
	out, err := s.repo.RemoveVerses(ctx, userID, ch, []string{loc.VerseNumber})
	if err != nil {
		s.log.Error("remove cluster verse failed", zap.Int("user_id", userID), zap.Stringer("verse", loc), zap.Error(err))
		return RemoveResult{}
	}
	return RemoveResult{Success: true, ClusterDeleted: len(out.DeletedClusters) > 0}
}

// RemoveMultipleVersesFromClusters applies the single-verse removal to each
// verse and succeeds only if every removal succeeds.
func (s *Service) RemoveMultipleVersesFromClusters(ctx context.Context, userID int, ch verse.Chapter, numbers []string) bool {
	if userID == 0 {
		return false
	}
	numbers = verse.SortNumbers(numbers)
	defer s.lockVerses(userID, ch, numbers)()

	return s.removeAll(ctx, userID, ch, numbers)
}

func (s *Service) removeAll(ctx context.Context, userID int, ch verse.Chapter, numbers []string) bool {
	ok := true
	for _, n := range numbers {
		if !s.remove(ctx, userID, ch.Verse(n)).Success {
			ok = false
		}
	}
	return ok
}

func (s *Service) DeleteCluster(ctx context.Context, userID int, clusterID string) bool {
	if userID == 0 || clusterID == "" {
		return false
	}
	if err := s.repo.DeleteCluster(ctx, userID, clusterID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("delete cluster failed", zap.String("cluster_id", clusterID), zap.Error(err))
		}
		return false
	}
	return true
}

// UpdateClusterOrder persists a new ordering row by row; any failed row
// fails the call.
func (s *Service) UpdateClusterOrder(ctx context.Context, userID int, order []OrderItem) bool {
	if userID == 0 {
		return false
	}
	ok := true
	for _, item := range order {
		if err := s.repo.UpdateSortOrder(ctx, userID, item.ID, item.SortOrder); err != nil {
			s.log.Error("update cluster order failed",
				zap.String("cluster_id", item.ID),
				zap.Int("sort_order", item.SortOrder),
				zap.Error(err))
			ok = false
		}
	}
	return ok
}

func (s *Service) GetClusterVerseNumbers(ctx context.Context, userID int, ch verse.Chapter) verse.Set {
	set := verse.NewSet()
	if userID == 0 {
		return set
	}
	numbers, err := s.repo.ChapterVerseNumbers(ctx, userID, ch)
	if err != nil {
		s.log.Error("load cluster verse numbers failed", zap.Int("user_id", userID), zap.Error(err))
		return set
	}
	for _, n := range numbers {
		set.Add(n)
	}
	return set
}

// ToggleFavorite unfavorites every verse when any of them is already
// clustered; otherwise it saves all of them together as one new cluster
// labelled "<chapterReference>:<n1>,<n2>,...". The verses stay locked from
// reading the stored membership until the writes finish.
func (s *Service) ToggleFavorite(ctx context.Context, userID int, ch verse.Chapter, chapterReference string, verses []NewVerse) FavoriteResult {
	verses = dedupe(verses)
	numbers := make([]string, 0, len(verses))
	for _, v := range verses {
		numbers = append(numbers, v.VerseNumber)
	}
	numbers = verse.SortNumbers(numbers)

	res := FavoriteResult{Favorited: true}
	if userID == 0 || len(numbers) == 0 {
		return res
	}
	defer s.lockVerses(userID, ch, numbers)()

	clustered, err := s.repo.ChapterVerseNumbers(ctx, userID, ch)
	if err != nil {
		s.log.Error("load cluster verse numbers for toggle failed",
			zap.Int("user_id", userID),
			zap.Strings("verses", numbers),
			zap.Error(err))
		return res
	}
	res.Favorited = !verse.NewSet(clustered...).Any(numbers)

	if !res.Favorited {
		res.Success = s.removeAll(ctx, userID, ch, numbers)
		return res
	}

	for i := range verses {
		if verses[i].VerseReference == "" {
			verses[i].VerseReference = verse.Reference(chapterReference, []string{verses[i].VerseNumber})
		}
	}
	res.Cluster = s.create(ctx, userID, ch, verse.Reference(chapterReference, numbers), verses, nil)
	res.Success = res.Cluster != nil
	return res
}

func dedupe(verses []NewVerse) []NewVerse {
	seen := verse.NewSet()
	out := make([]NewVerse, 0, len(verses))
	for _, v := range verses {
		if v.VerseNumber == "" || seen.Has(v.VerseNumber) {
			continue
		}
		seen.Add(v.VerseNumber)
		out = append(out, v)
	}
	return out
}
