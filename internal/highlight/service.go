package highlight

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

// Service is the highlight store adapter. A zero userID means no signed-in
// identity: reads return empty sets and writes report false.
type Service struct {
	repo  Repository
	locks *verse.Locks
	log   *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo:  repo,
		locks: verse.NewLocks(),
		log:   logger.OrNop(log),
	}
}

func lockKey(userID int, loc verse.Locator) string {
	return loc.Key() + "|" + strconv.Itoa(userID)
}

// LoadChapterHighlights returns the verse numbers the user has highlighted.
func (s *Service) LoadChapterHighlights(ctx context.Context, userID int, ch verse.Chapter) verse.Set {
	set := verse.NewSet()
	if userID == 0 {
		return set
	}

	marks, err := s.repo.ListChapter(ctx, userID, ch)
	if err != nil {
		s.log.Error("load chapter highlights failed",
			zap.Int("user_id", userID),
			zap.String("bible_id", ch.BibleID),
			zap.String("chapter_id", ch.ChapterID),
			zap.Error(err))
		return set
	}
	for _, m := range marks {
		set.Add(m.VerseNumber)
	}
	return set
}

func (s *Service) SaveHighlight(ctx context.Context, userID int, loc verse.Locator) bool {
	if userID == 0 {
		return false
	}
	defer s.locks.Lock(lockKey(userID, loc))()

	if err := s.repo.Save(ctx, userID, loc); err != nil {
		s.log.Error("save highlight failed", zap.Int("user_id", userID), zap.Stringer("verse", loc), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) RemoveHighlight(ctx context.Context, userID int, loc verse.Locator) bool {
	if userID == 0 {
		return false
	}
	defer s.locks.Lock(lockKey(userID, loc))()

	if err := s.repo.Delete(ctx, userID, loc); err != nil {
		s.log.Error("remove highlight failed", zap.Int("user_id", userID), zap.Stringer("verse", loc), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) lockVerses(userID int, ch verse.Chapter, numbers []string) func() {
	keys := make([]string, 0, len(numbers))
	for _, n := range numbers {
		keys = append(keys, lockKey(userID, ch.Verse(n)))
	}
	return s.locks.LockAll(keys)
}

// Toggle applies the multi-verse rule: if any of the verses is highlighted,
// all of them are un-highlighted; otherwise all are highlighted. The verses
// stay locked from reading the stored marks until the writes finish.
func (s *Service) Toggle(ctx context.Context, userID int, ch verse.Chapter, numbers []string) ToggleResult {
	numbers = verse.SortNumbers(numbers)
	res := ToggleResult{Highlighted: true}
	if len(numbers) == 0 {
		return res
	}
	if userID == 0 {
		res.Failed = numbers
		return res
	}
	defer s.lockVerses(userID, ch, numbers)()

	marks, err := s.repo.ListChapter(ctx, userID, ch)
	if err != nil {
		s.log.Error("load highlights for toggle failed",
			zap.Int("user_id", userID),
			zap.Strings("verses", numbers),
			zap.Error(err))
		res.Failed = numbers
		return res
	}
	current := verse.NewSet()
	for _, m := range marks {
		current.Add(m.VerseNumber)
	}
	res.Highlighted = !current.Any(numbers)

	if !res.Highlighted {
		if _, err := s.repo.DeleteMany(ctx, userID, ch, numbers); err != nil {
			s.log.Error("remove highlights failed",
				zap.Int("user_id", userID),
				zap.Strings("verses", numbers),
				zap.Error(err))
			res.Failed = numbers
			return res
		}
		res.Applied = numbers
		return res
	}

	for _, n := range numbers {
		loc := ch.Verse(n)
		if err := s.repo.Save(ctx, userID, loc); err != nil {
			s.log.Error("save highlight failed", zap.Int("user_id", userID), zap.Stringer("verse", loc), zap.Error(err))
			res.Failed = append(res.Failed, n)
			continue
		}
		res.Applied = append(res.Applied, n)
	}
	return res
}
