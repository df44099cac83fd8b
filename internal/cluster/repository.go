package cluster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/lib/pq"

	"github.com/taiwoajasa245/pocket-pastor/internal/database"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrInternalServer = errors.New("internal server error")
)

// Repository persists clusters and their verses. Every call is scoped to
// userID.
type Repository interface {
	InsertCluster(ctx context.Context, c *VerseCluster) error
	InsertVerses(ctx context.Context, verses []ClusterVerse) error
	DeleteCluster(ctx context.Context, userID int, clusterID string) error
	ListChapter(ctx context.Context, userID int, ch verse.Chapter) ([]VerseCluster, error)
	ListAll(ctx context.Context, userID int) ([]VerseCluster, error)
	RemoveVerses(ctx context.Context, userID int, ch verse.Chapter, numbers []string) (RemoveOutcome, error)
	UpdateSortOrder(ctx context.Context, userID int, clusterID string, sortOrder int) error
	ChapterVerseNumbers(ctx context.Context, userID int, ch verse.Chapter) ([]string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

func (r *repository) InsertCluster(ctx context.Context, c *VerseCluster) error {
	query := `
		INSERT INTO verse_clusters (id, user_id, bible_id, chapter_id, reference, cluster_name, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	var sortOrder sql.NullInt64
	if c.SortOrder != nil {
		sortOrder = sql.NullInt64{Int64: int64(*c.SortOrder), Valid: true}
	}
	var name sql.NullString
	if c.ClusterName != nil {
		name = sql.NullString{String: *c.ClusterName, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.BibleID, c.ChapterID, c.Reference, name, sortOrder,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cluster: %w", err)
	}
	return nil
}

func (r *repository) InsertVerses(ctx context.Context, verses []ClusterVerse) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert verses: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO cluster_verses (id, cluster_id, verse_number, verse_text, verse_reference)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, v := range verses {
		if _, err := tx.ExecContext(ctx, query, v.ID, v.ClusterID, v.VerseNumber, v.VerseText, v.VerseReference); err != nil {
			return fmt.Errorf("insert cluster verse %s: %w", v.VerseNumber, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert verses: %w", err)
	}
	return nil
}

func (r *repository) DeleteCluster(ctx context.Context, userID int, clusterID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM verse_clusters WHERE id = $1 AND user_id = $2`, clusterID, userID)
	if err != nil {
		return fmt.Errorf("delete cluster %s: %w", clusterID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ErrInternalServer
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectClusters = `
	SELECT vc.id, vc.user_id, vc.bible_id, vc.chapter_id, vc.reference, vc.cluster_name,
	       vc.sort_order, vc.created_at,
	       cv.id, cv.verse_number, cv.verse_text, cv.verse_reference
	FROM verse_clusters vc
	JOIN cluster_verses cv ON cv.cluster_id = vc.id
`

func (r *repository) ListChapter(ctx context.Context, userID int, ch verse.Chapter) ([]VerseCluster, error) {
	query := selectClusters + `
		WHERE vc.user_id = $1 AND vc.bible_id = $2 AND vc.chapter_id = $3
		ORDER BY vc.created_at ASC
	`
	return r.list(ctx, query, userID, ch.BibleID, ch.ChapterID)
}

func (r *repository) ListAll(ctx context.Context, userID int) ([]VerseCluster, error) {
	query := selectClusters + `
		WHERE vc.user_id = $1
		ORDER BY vc.sort_order ASC NULLS LAST, vc.created_at ASC
	`
	return r.list(ctx, query, userID)
}

func (r *repository) list(ctx context.Context, query string, args ...interface{}) ([]VerseCluster, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clusters: %w", err)
	}
	defer rows.Close()

	var clusters []VerseCluster
	index := make(map[string]int)
	for rows.Next() {
		var (
			c         VerseCluster
			v         ClusterVerse
			name      sql.NullString
			sortOrder sql.NullInt64
		)
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.BibleID, &c.ChapterID, &c.Reference, &name,
			&sortOrder, &c.CreatedAt,
			&v.ID, &v.VerseNumber, &v.VerseText, &v.VerseReference,
		); err != nil {
			return nil, fmt.Errorf("scan cluster: %w", err)
		}
		v.ClusterID = c.ID

		i, seen := index[c.ID]
		if !seen {
			if name.Valid {
				c.ClusterName = &name.String
			}
			if sortOrder.Valid {
				so := int(sortOrder.Int64)
				c.SortOrder = &so
			}
			clusters = append(clusters, c)
			i = len(clusters) - 1
			index[c.ID] = i
		}
		clusters[i].Verses = append(clusters[i].Verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clusters: %w", err)
	}

	for i := range clusters {
		sortVerses(clusters[i].Verses)
	}
	return clusters, nil
}

// RemoveVerses deletes the given verses from every cluster of the chapter
// and deletes clusters left empty, in one transaction.
func (r *repository) RemoveVerses(ctx context.Context, userID int, ch verse.Chapter, numbers []string) (RemoveOutcome, error) {
	var out RemoveOutcome

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return out, fmt.Errorf("begin remove verses: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT cv.id, cv.cluster_id, cv.verse_number
		FROM cluster_verses cv
		JOIN verse_clusters vc ON vc.id = cv.cluster_id
		WHERE vc.user_id = $1 AND vc.bible_id = $2 AND vc.chapter_id = $3
		  AND cv.verse_number = ANY($4)
		FOR UPDATE OF vc
	`, userID, ch.BibleID, ch.ChapterID, pq.Array(numbers))
	if err != nil {
		return out, fmt.Errorf("locate cluster verses: %w", err)
	}

	var verseIDs []string
	clusterIDs := make(map[string]struct{})
	removed := make(map[string]struct{})
	for rows.Next() {
		var id, clusterID, number string
		if err := rows.Scan(&id, &clusterID, &number); err != nil {
			rows.Close()
			return out, fmt.Errorf("scan cluster verse: %w", err)
		}
		verseIDs = append(verseIDs, id)
		clusterIDs[clusterID] = struct{}{}
		removed[number] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("iterate cluster verses: %w", err)
	}

	for _, id := range verseIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cluster_verses WHERE id = $1`, id); err != nil {
			return out, fmt.Errorf("delete cluster verse: %w", err)
		}
	}

	for clusterID := range clusterIDs {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM verse_clusters
			WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM cluster_verses WHERE cluster_id = $1)
		`, clusterID)
		if err != nil {
			return out, fmt.Errorf("delete empty cluster %s: %w", clusterID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			out.DeletedClusters = append(out.DeletedClusters, clusterID)
		}
	}

	if err := tx.Commit(); err != nil {
		return RemoveOutcome{}, fmt.Errorf("commit remove verses: %w", err)
	}

	for n := range removed {
		out.Removed = append(out.Removed, n)
	}
	out.Removed = verse.SortNumbers(out.Removed)
	sort.Strings(out.DeletedClusters)
	return out, nil
}

func (r *repository) UpdateSortOrder(ctx context.Context, userID int, clusterID string, sortOrder int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE verse_clusters SET sort_order = $1 WHERE id = $2 AND user_id = $3`,
		sortOrder, clusterID, userID)
	if err != nil {
		return fmt.Errorf("update sort order %s: %w", clusterID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ErrInternalServer
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ChapterVerseNumbers(ctx context.Context, userID int, ch verse.Chapter) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT cv.verse_number
		FROM cluster_verses cv
		JOIN verse_clusters vc ON vc.id = cv.cluster_id
		WHERE vc.user_id = $1 AND vc.bible_id = $2 AND vc.chapter_id = $3
	`, userID, ch.BibleID, ch.ChapterID)
	if err != nil {
		return nil, fmt.Errorf("query cluster verse numbers: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan cluster verse number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cluster verse numbers: %w", err)
	}
	return verse.SortNumbers(numbers), nil
}

func sortVerses(vs []ClusterVerse) {
	sort.SliceStable(vs, func(i, j int) bool { return verse.Less(vs[i].VerseNumber, vs[j].VerseNumber) })
}
