package reader

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/pocket-pastor/internal/bible"
	"github.com/taiwoajasa245/pocket-pastor/internal/chat"
	"github.com/taiwoajasa245/pocket-pastor/internal/cluster"
	"github.com/taiwoajasa245/pocket-pastor/internal/highlight"
	"github.com/taiwoajasa245/pocket-pastor/internal/selection"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
)

const john3Text = "16 For God so loved the world, that he gave his only begotten Son. " +
	"17 For God sent not his Son into the world to condemn the world. " +
	"18 He that believeth on him is not condemned."

const genesis1Text = "1 In the beginning God created the heaven and the earth. 2 And the earth was without form. " +
	"3 And God said, Let there be light. 4 And God saw the light. 5 And God called the light Day. " +
	"6 And God said, Let there be a firmament. 7 And God made the firmament. 8 And God called the firmament Heaven."

var (
	john3    = verse.Chapter{BibleID: "kjv", ChapterID: "JHN.3"}
	genesis1 = verse.Chapter{BibleID: "kjv", ChapterID: "GEN.1"}
)

type stubBible map[string]bible.Chapter

func (s stubBible) GetChapter(_ context.Context, bibleID, chapterID string) (*bible.Chapter, error) {
	ch, ok := s[chapterID]
	if !ok {
		return nil, bible.ErrChapterNotFound
	}
	ch.BibleID = bibleID
	ch.ChapterID = chapterID
	return &ch, nil
}

var chapters = stubBible{
	"JHN.3": {Reference: "John 3", Text: john3Text},
	"GEN.1": {Reference: "Genesis 1", Text: genesis1Text},
	"PLAIN": {Reference: "Plain", Text: "no markers here at all"},
}

type fixture struct {
	svc        *Service
	highlights *highlight.Service
	clusters   *cluster.Service
	handoff    *chat.RedisHandoff
}

func newFixture(t *testing.T, hlRepo highlight.Repository) *fixture {
	t.Helper()
	if hlRepo == nil {
		hlRepo = highlight.NewMemoryRepository()
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &fixture{
		highlights: highlight.NewService(hlRepo, nil),
		clusters:   cluster.NewService(cluster.NewMemoryRepository(), nil),
		handoff:    chat.NewRedisHandoff(client),
	}
	f.svc = NewService(Deps{
		Bible:       chapters,
		Highlights:  f.highlights,
		Clusters:    f.clusters,
		Chat:        f.handoff,
		ScrollDelay: 300 * time.Millisecond,
	})
	return f
}

func (f *fixture) open(t *testing.T, userID int, ch verse.Chapter, opts Options) *View {
	t.Helper()
	v, err := f.svc.Load(context.Background(), userID, ch, opts)
	require.NoError(t, err)
	return v
}

func TestLoadDecoratesHighlightAndFavoriteIndependently(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.True(t, f.highlights.SaveHighlight(ctx, 1, john3.Verse("16")))
	require.True(t, f.clusters.ToggleFavorite(ctx, 1, john3, "John 3", []cluster.NewVerse{{VerseNumber: "16"}, {VerseNumber: "17"}}).Success)

	out := f.open(t, 1, john3, Options{}).Render()

	require.True(t, out.Segmented)
	require.Len(t, out.Verses, 3)
	assert.True(t, out.Verses[0].Highlighted)
	assert.True(t, out.Verses[0].Favorited)
	assert.False(t, out.Verses[1].Highlighted)
	assert.True(t, out.Verses[1].Favorited)
	assert.Contains(t, out.HTML, `class="verse-container highlighted clustered" data-verse="16"`)
	assert.Contains(t, out.HTML, `class="verse-container clustered" data-verse="17"`)
	assert.Contains(t, out.HTML, `class="verse-container" data-verse="18"`)
	assert.False(t, out.ActionBar.Visible)
}

func TestAnonymousLoadHasNoDecorations(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.highlights.SaveHighlight(context.Background(), 1, john3.Verse("16")))

	out := f.open(t, 0, john3, Options{}).Render()

	for _, vv := range out.Verses {
		assert.False(t, vv.Highlighted)
		assert.False(t, vv.Favorited)
	}
}

func TestLoadMissingChapter(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Load(context.Background(), 1, verse.Chapter{BibleID: "kjv", ChapterID: "NOPE.1"}, Options{})

	assert.ErrorIs(t, err, bible.ErrChapterNotFound)
}

func TestAnyHighlightedToggleRemovesAll(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.True(t, f.highlights.SaveHighlight(ctx, 1, john3.Verse("17")))
	v := f.open(t, 1, john3, Options{})

	for _, n := range []string{"16", "17", "18"} {
		_, err := v.TapVerse(n, selection.Rect{Top: 100, Height: 20})
		require.NoError(t, err)
	}
	assert.True(t, v.ActionBar().Highlighted)

	out := v.ToggleHighlight(ctx)

	assert.True(t, out.Success)
	assert.False(t, out.Active)
	for _, n := range []string{"16", "17", "18"} {
		st, _ := v.State(n)
		assert.False(t, st.Highlighted, "verse %s", n)
	}
	assert.Empty(t, f.highlights.LoadChapterHighlights(ctx, 1, john3))
	assert.Equal(t, selection.Idle, v.Mode())
}

func TestHighlightToggleIsSelfInverse(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	v := f.open(t, 1, john3, Options{})

	_, _ = v.TapVerse("16", selection.Rect{})
	assert.True(t, v.ToggleHighlight(ctx).Active)
	st, _ := v.State("16")
	assert.True(t, st.Highlighted)
	assert.Len(t, f.highlights.LoadChapterHighlights(ctx, 1, john3), 1)

	_, _ = v.TapVerse("16", selection.Rect{})
	assert.False(t, v.ToggleHighlight(ctx).Active)
	st, _ = v.State("16")
	assert.False(t, st.Highlighted)
	assert.Empty(t, f.highlights.LoadChapterHighlights(ctx, 1, john3))
}

type brokenHighlights struct {
	highlight.Repository
}

func (brokenHighlights) Save(context.Context, int, verse.Locator) error {
	return errors.New("backend down")
}

func TestFailedHighlightLeavesStateAndClearsSelection(t *testing.T) {
	f := newFixture(t, brokenHighlights{Repository: highlight.NewMemoryRepository()})
	v := f.open(t, 1, john3, Options{})
	_, _ = v.TapVerse("18", selection.Rect{})

	out := v.ToggleHighlight(context.Background())

	assert.False(t, out.Success)
	st, _ := v.State("18")
	assert.False(t, st.Highlighted)
	assert.False(t, st.Selected)
	assert.Equal(t, selection.Idle, v.Mode())
	assert.NotContains(t, v.Render().HTML, "highlighted")
}

func TestTextSelectionClearsVerseSet(t *testing.T) {
	f := newFixture(t, nil)
	v := f.open(t, 1, genesis1, Options{})

	_, _ = v.TapVerse("5", selection.Rect{})
	_, _ = v.TapVerse("7", selection.Rect{})
	assert.Equal(t, selection.VerseMultiSelect, v.Mode())

	ok, err := v.SelectText(selection.Range{StartVerse: "2", StartOffset: 4, EndVerse: "3", EndOffset: 7}, selection.Rect{Top: 40})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, selection.TextRange, v.Mode())
	for _, n := range []string{"5", "7"} {
		st, _ := v.State(n)
		assert.False(t, st.Selected, "verse %s", n)
		assert.False(t, st.InTextRange, "verse %s", n)
	}
	st, _ := v.State("2")
	assert.True(t, st.InTextRange)
	assert.Equal(t, []string{"2", "3"}, v.ActionBar().Verses)

	out := v.Render()
	assert.NotContains(t, out.HTML, "selected")
	assert.Contains(t, out.HTML, `And <mark class="temp-selection">the earth was without form.</mark>`)
	assert.Contains(t, out.HTML, `<mark class="temp-selection">And God</mark> said`)

	copied := v.Copy()
	assert.Equal(t, "the earth was without form. And God", copied.Text)
	assert.Equal(t, "Genesis 1:2,3", copied.Reference)
	assert.Equal(t, selection.Idle, v.Mode())
	assert.NotContains(t, v.Render().HTML, "temp-selection")
}

func TestFavoriteThreeVersesThroughView(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	v := f.open(t, 1, john3, Options{})

	for _, n := range []string{"18", "16", "17"} {
		_, _ = v.TapVerse(n, selection.Rect{})
	}
	out := v.ToggleFavorite(ctx)

	require.True(t, out.Success)
	assert.True(t, out.Active)
	assert.Equal(t, "John 3:16,17,18", out.Reference)
	clusters := f.clusters.GetChapterClusters(ctx, 1, john3)
	require.Len(t, clusters, 1)
	assert.Equal(t, "John 3:16,17,18", clusters[0].Reference)
	require.Len(t, clusters[0].Verses, 3)
	assert.Equal(t, "For God so loved the world, that he gave his only begotten Son.", clusters[0].Verses[0].VerseText)
	for _, n := range []string{"16", "17", "18"} {
		st, _ := v.State(n)
		assert.True(t, st.Favorited)
	}

	for _, n := range []string{"16", "17", "18"} {
		_, _ = v.TapVerse(n, selection.Rect{})
	}
	assert.True(t, v.ActionBar().Favorited)
	out = v.ToggleFavorite(ctx)

	require.True(t, out.Success)
	assert.False(t, out.Active)
	assert.Empty(t, f.clusters.GetChapterClusters(ctx, 1, john3))
	assert.NotContains(t, v.Render().HTML, "clustered")
}

func TestAskAIHandsOffSelection(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	v := f.open(t, 4, john3, Options{})
	_, _ = v.TapVerse("17", selection.Rect{})
	_, _ = v.TapVerse("16", selection.Rect{})

	out := v.AskAI(ctx)

	require.True(t, out.Success)
	prompts, err := f.handoff.Pending(ctx, 4)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "John 3:16,17", prompts[0].Reference)
	assert.True(t, strings.HasPrefix(prompts[0].Text, "For God so loved"))
	assert.Contains(t, prompts[0].Text, "Son. For God sent")
	assert.Equal(t, selection.Idle, v.Mode())
}

func TestAnonymousAskAIIsNotQueued(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	v := f.open(t, 0, john3, Options{})
	_, _ = v.TapVerse("16", selection.Rect{})

	out := v.AskAI(ctx)

	assert.False(t, out.Success)
	assert.Equal(t, "John 3:16", out.Reference)
	prompts, err := f.handoff.Pending(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, prompts)
	assert.Equal(t, selection.Idle, v.Mode())
}

func TestHighlightToggleFollowsStoreOverStaleView(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	stale := f.open(t, 1, john3, Options{})
	fresh := f.open(t, 1, john3, Options{})

	_, _ = fresh.TapVerse("16", selection.Rect{})
	require.True(t, fresh.ToggleHighlight(ctx).Active)

	_, _ = stale.TapVerse("16", selection.Rect{})
	assert.False(t, stale.ActionBar().Highlighted)
	out := stale.ToggleHighlight(ctx)

	require.True(t, out.Success)
	assert.False(t, out.Active)
	st, _ := stale.State("16")
	assert.False(t, st.Highlighted)
	assert.Empty(t, f.highlights.LoadChapterHighlights(ctx, 1, john3))
}

func TestActionBarPlacement(t *testing.T) {
	f := newFixture(t, nil)
	v := f.open(t, 1, john3, Options{Viewport: selection.Viewport{Width: 400, Height: 800, BottomBar: 60}})

	_, _ = v.TapVerse("16", selection.Rect{Top: 700, Left: 100, Width: 200, Height: 30})
	bar := v.ActionBar()

	assert.True(t, bar.Visible)
	assert.True(t, bar.Placement.Above)

	_, _ = v.TapVerse("16", selection.Rect{})
	assert.False(t, v.ActionBar().Visible)
}

func TestTargetVerseScrollAndSearchHighlight(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.True(t, f.highlights.SaveHighlight(ctx, 1, john3.Verse("16")))
	v := f.open(t, 1, john3, Options{TargetVerse: "16-17", Query: "world"})

	scroll, ok := v.InitialScroll()
	require.True(t, ok)
	assert.Equal(t, Scroll{Verse: "16", Block: "center", Behavior: "smooth", DelayMS: 300}, scroll)

	html := v.Render().HTML
	assert.Equal(t, 3, strings.Count(html, `<mark class="search-highlight">world</mark>`))

	assert.True(t, v.DismissSearchHighlight("17"))
	assert.False(t, v.DismissSearchHighlight("17"))
	html = v.Render().HTML
	assert.Equal(t, 1, strings.Count(html, `<mark class="search-highlight">world</mark>`))

	st, _ := v.State("16")
	assert.True(t, st.Highlighted)
	assert.Equal(t, []string{"world"}, st.SearchTerms)
}

func TestMissingTargetVerseIsSkipped(t *testing.T) {
	f := newFixture(t, nil)

	v := f.open(t, 1, john3, Options{TargetVerse: "40"})

	_, ok := v.InitialScroll()
	assert.False(t, ok)
}

func TestUnsegmentedChapterIsReadable(t *testing.T) {
	f := newFixture(t, nil)
	v := f.open(t, 1, verse.Chapter{BibleID: "kjv", ChapterID: "PLAIN"}, Options{})

	out := v.Render()
	assert.False(t, out.Segmented)
	assert.Equal(t, "no markers here at all", out.HTML)

	_, err := v.TapVerse("1", selection.Rect{})
	assert.ErrorIs(t, err, ErrUnknownVerse)
}

func TestParseTargets(t *testing.T) {
	assert.Equal(t, []string{"16"}, parseTargets("16"))
	assert.Equal(t, []string{"16", "17", "18"}, parseTargets("18, 16-17"))
	assert.Equal(t, []string{"3"}, parseTargets("3-1"))
	assert.Empty(t, parseTargets(""))
}

func TestDecorateEscapesAndNests(t *testing.T) {
	got := decorate("a <b> world", [2]int{0, 3}, []string{"WORLD"})

	assert.Equal(t, `<mark class="temp-selection">a &lt;</mark>b&gt; <mark class="search-highlight">world</mark>`, got)
}
