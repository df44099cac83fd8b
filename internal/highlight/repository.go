package highlight

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/taiwoajasa245/pocket-pastor/internal/database"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

var ErrInternalServer = errors.New("internal server error")

// Repository persists highlight marks. Every call is scoped to userID.
type Repository interface {
	ListChapter(ctx context.Context, userID int, ch verse.Chapter) ([]Mark, error)
	Save(ctx context.Context, userID int, loc verse.Locator) error
	Delete(ctx context.Context, userID int, loc verse.Locator) error
	DeleteMany(ctx context.Context, userID int, ch verse.Chapter, numbers []string) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

func (r *repository) ListChapter(ctx context.Context, userID int, ch verse.Chapter) ([]Mark, error) {
	query := `
		SELECT user_id, bible_id, chapter_id, verse_number, created_at
		FROM highlights
		WHERE user_id = $1 AND bible_id = $2 AND chapter_id = $3
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, ch.BibleID, ch.ChapterID)
	if err != nil {
		return nil, fmt.Errorf("query highlights: %w", err)
	}
	defer rows.Close()

	var marks []Mark
	for rows.Next() {
		var m Mark
		if err := rows.Scan(&m.UserID, &m.BibleID, &m.ChapterID, &m.VerseNumber, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan highlight: %w", err)
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate highlights: %w", err)
	}
	return marks, nil
}

func (r *repository) Save(ctx context.Context, userID int, loc verse.Locator) error {
	query := `
		INSERT INTO highlights (user_id, bible_id, chapter_id, verse_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, bible_id, chapter_id, verse_number) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, loc.BibleID, loc.ChapterID, loc.VerseNumber); err != nil {
		return fmt.Errorf("insert highlight %s: %w", loc, err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID int, loc verse.Locator) error {
	query := `
		DELETE FROM highlights
		WHERE user_id = $1 AND bible_id = $2 AND chapter_id = $3 AND verse_number = $4
	`
	if _, err := r.db.ExecContext(ctx, query, userID, loc.BibleID, loc.ChapterID, loc.VerseNumber); err != nil {
		return fmt.Errorf("delete highlight %s: %w", loc, err)
	}
	return nil
}

func (r *repository) DeleteMany(ctx context.Context, userID int, ch verse.Chapter, numbers []string) (int64, error) {
	query := `
		DELETE FROM highlights
		WHERE user_id = $1 AND bible_id = $2 AND chapter_id = $3 AND verse_number = ANY($4)
	`
	res, err := r.db.ExecContext(ctx, query, userID, ch.BibleID, ch.ChapterID, pq.Array(numbers))
	if err != nil {
		return 0, fmt.Errorf("delete highlights: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, ErrInternalServer
	}
	return n, nil
}
