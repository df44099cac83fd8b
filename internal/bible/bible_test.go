package bible

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteProviderGetChapter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bibles/kjv/chapters/JHN.3", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("api-key"))
		if r.URL.Path != "/bibles/kjv/chapters/JHN.3" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"JHN.3","bibleId":"kjv","reference":"John 3","content":"16 For God so loved the world."}}`))
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL+"/", "key-123", srv.Client())
	ch, err := p.GetChapter(context.Background(), "kjv", "JHN.3")

	require.NoError(t, err)
	assert.Equal(t, "John 3", ch.Reference)
	assert.Equal(t, "16 For God so loved the world.", ch.Text)
}

func TestRemoteProviderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewRemoteProvider(srv.URL, "", srv.Client()).GetChapter(context.Background(), "kjv", "XXX.1")

	assert.ErrorIs(t, err, ErrChapterNotFound)
}

func TestRemoteProviderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRemoteProvider(srv.URL, "", srv.Client()).GetChapter(context.Background(), "kjv", "JHN.3")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrChapterNotFound)
}

const kjvYAML = `bible_id: kjv
name: King James Version
chapters:
  - id: JHN.3
    reference: John 3
    text: |
      16 For God so loved the world. 17 For God sent not his Son.
`

func TestLocalProvider(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kjv.yaml"), []byte(kjvYAML), 0o644))
	p := NewLocalProvider(dir)
	ctx := context.Background()

	ch, err := p.GetChapter(ctx, "kjv", "JHN.3")
	require.NoError(t, err)
	assert.Equal(t, "kjv", ch.BibleID)
	assert.Equal(t, "John 3", ch.Reference)
	assert.Contains(t, ch.Text, "17 For God sent")

	_, err = p.GetChapter(ctx, "kjv", "GEN.1")
	assert.ErrorIs(t, err, ErrChapterNotFound)

	_, err = p.GetChapter(ctx, "web", "JHN.3")
	assert.ErrorIs(t, err, ErrChapterNotFound)

	_, err = p.GetChapter(ctx, "../kjv", "JHN.3")
	assert.ErrorIs(t, err, ErrChapterNotFound)
}

type countingProvider struct {
	calls atomic.Int32
}

func (c *countingProvider) GetChapter(_ context.Context, bibleID, chapterID string) (*Chapter, error) {
	c.calls.Add(1)
	return &Chapter{BibleID: bibleID, ChapterID: chapterID, Reference: "John 3", Text: "16 For God so loved the world."}, nil
}

func TestCachedProviderReadsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	inner := &countingProvider{}
	p := NewCachedProvider(inner, client, time.Hour, nil)
	ctx := context.Background()

	first, err := p.GetChapter(ctx, "kjv", "JHN.3")
	require.NoError(t, err)
	second, err := p.GetChapter(ctx, "kjv", "JHN.3")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.True(t, mr.Exists("chapter:kjv:JHN.3"))

	mr.FastForward(2 * time.Hour)
	_, err = p.GetChapter(ctx, "kjv", "JHN.3")
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedProviderFallsBackWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	inner := &countingProvider{}
	ch, err := NewCachedProvider(inner, client, time.Hour, nil).GetChapter(context.Background(), "kjv", "JHN.3")

	require.NoError(t, err)
	assert.Equal(t, "John 3", ch.Reference)
}
