package cluster

import "time"

// VerseCluster is a favorite: one or more verses saved together under one
// reference. A persisted cluster always has at least one verse.
type VerseCluster struct {
	ID          string         `json:"id"`
	UserID      int            `json:"user_id,omitempty"`
	BibleID     string         `json:"bible_id"`
	ChapterID   string         `json:"chapter_id"`
	Reference   string         `json:"reference"`
	ClusterName *string        `json:"cluster_name,omitempty"`
	SortOrder   *int           `json:"sort_order,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Verses      []ClusterVerse `json:"verses"`
}

func (c VerseCluster) VerseNumbers() []string {
	out := make([]string, 0, len(c.Verses))
	for _, v := range c.Verses {
		out = append(out, v.VerseNumber)
	}
	return out
}

type ClusterVerse struct {
	ID             string `json:"id"`
	ClusterID      string `json:"cluster_id"`
	VerseNumber    string `json:"verse_number"`
	VerseText      string `json:"verse_text"`
	VerseReference string `json:"verse_reference"`
}

// NewVerse is a verse to be added to a new cluster.
type NewVerse struct {
	VerseNumber    string `json:"verse_number"`
	VerseText      string `json:"verse_text"`
	VerseReference string `json:"verse_reference"`
}

type RemoveResult struct {
	Success        bool `json:"success"`
	ClusterDeleted bool `json:"cluster_deleted,omitempty"`
}

// RemoveOutcome is what a removal did in the store.
type RemoveOutcome struct {
	Removed         []string
	DeletedClusters []string
}

type OrderItem struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

// FavoriteResult reports a favorite toggle. Favorited is the state the
// toggle moved towards; Cluster is set when a new cluster was created.
type FavoriteResult struct {
	Favorited bool          `json:"favorited"`
	Success   bool          `json:"success"`
	Cluster   *VerseCluster `json:"cluster,omitempty"`
}

type CreateClusterRequest struct {
	BibleID     string     `json:"bible_id"`
	ChapterID   string     `json:"chapter_id"`
	Reference   string     `json:"reference"`
	ClusterName *string    `json:"cluster_name,omitempty"`
	Verses      []NewVerse `json:"verses"`
}

type RemoveVersesRequest struct {
	BibleID      string   `json:"bible_id"`
	ChapterID    string   `json:"chapter_id"`
	VerseNumbers []string `json:"verse_numbers"`
}

type ToggleFavoriteRequest struct {
	BibleID          string     `json:"bible_id"`
	ChapterID        string     `json:"chapter_id"`
	ChapterReference string     `json:"chapter_reference"`
	Verses           []NewVerse `json:"verses"`
}

type UpdateOrderRequest struct {
	Order []OrderItem `json:"order"`
}
