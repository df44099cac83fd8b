package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
	"github.com/taiwoajasa245/pocket-pastor/internal/bible"
	"github.com/taiwoajasa245/pocket-pastor/internal/cluster"
	"github.com/taiwoajasa245/pocket-pastor/internal/highlight"
	"github.com/taiwoajasa245/pocket-pastor/pkg/config"
)

const translation = `bible_id: kjv
name: King James Version
chapters:
  - id: JHN.3
    reference: John 3
    text: "16 For God so loved the world. 17 For God sent not his Son. 18 He that believeth on him is not condemned."
`

func newTestServer(t *testing.T) (*Server, *miniredis.Miniredis) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kjv.yaml"), []byte(translation), 0o644))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{
		AppEnv:           "test",
		Port:             "0",
		JWTSecret:        "secret",
		ChapterCacheTTL:  time.Hour,
		ReaderSessionTTL: time.Hour,
		ScrollDelay:      250 * time.Millisecond,
	}
	s, err := NewServer(cfg, Deps{
		Redis:         client,
		Bible:         bible.NewLocalProvider(dir),
		HighlightRepo: highlight.NewMemoryRepository(),
		ClusterRepo:   cluster.NewMemoryRepository(),
	}, nil)
	require.NoError(t, err)
	return s, mr
}

func request(t *testing.T, h http.Handler, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestNewServerRequiresSecret(t *testing.T) {
	_, err := NewServer(&config.Config{}, Deps{}, nil)

	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

func TestNewServerRequiresStore(t *testing.T) {
	_, err := NewServer(&config.Config{JWTSecret: "secret"}, Deps{}, nil)

	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s, mr := newTestServer(t)

	code, out := request(t, s.Handler(), http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "up", data["redis"].(map[string]interface{})["status"])

	mr.Close()
	code, _ = request(t, s.Handler(), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestReaderFlowCachesChapterAndHandsOffToChat(t *testing.T) {
	s, mr := newTestServer(t)
	h := s.Handler()
	token, err := s.tokens.Issue(11, "reader@example.com")
	require.NoError(t, err)

	code, out := request(t, h, http.MethodPost, "/pocket-pastor/v1/reader/sessions", token,
		`{"bible_id":"kjv","chapter_id":"JHN.3","verse":"17"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, mr.Exists("chapter:kjv:JHN.3"))
	data := out["data"].(map[string]interface{})
	id := data["session_id"].(string)
	scroll := data["scroll"].(map[string]interface{})
	assert.Equal(t, "17", scroll["verse"])
	assert.Equal(t, float64(250), scroll["delay_ms"])

	base := "/pocket-pastor/v1/reader/sessions/" + id
	request(t, h, http.MethodPost, base+"/tap", token, `{"verse_number":"16"}`)
	code, out = request(t, h, http.MethodPost, base+"/ask", token, "")
	require.Equal(t, http.StatusOK, code)
	outcome := out["data"].(map[string]interface{})["outcome"].(map[string]interface{})
	assert.Equal(t, true, outcome["success"])

	code, out = request(t, h, http.MethodGet, "/pocket-pastor/v1/chat/pending", token, "")
	require.Equal(t, http.StatusOK, code)
	prompts := out["data"].([]interface{})
	require.Len(t, prompts, 1)
	assert.Equal(t, "John 3:16", prompts[0].(map[string]interface{})["reference"])
}

func TestFavoriteThroughSessionShowsInClusters(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	token, err := s.tokens.Issue(12, "reader@example.com")
	require.NoError(t, err)

	_, out := request(t, h, http.MethodPost, "/pocket-pastor/v1/reader/sessions", token, `{"bible_id":"kjv","chapter_id":"JHN.3"}`)
	base := "/pocket-pastor/v1/reader/sessions/" + out["data"].(map[string]interface{})["session_id"].(string)
	for _, n := range []string{"16", "17", "18"} {
		request(t, h, http.MethodPost, base+"/tap", token, `{"verse_number":"`+n+`"}`)
	}
	request(t, h, http.MethodPost, base+"/favorite", token, "")

	_, out = request(t, h, http.MethodGet, "/pocket-pastor/v1/clusters", token, "")
	clusters := out["data"].([]interface{})
	require.Len(t, clusters, 1)
	assert.Equal(t, "John 3:16,17,18", clusters[0].(map[string]interface{})["reference"])
}

func TestChatPendingNeedsToken(t *testing.T) {
	s, _ := newTestServer(t)

	code, _ := request(t, s.Handler(), http.MethodGet, "/pocket-pastor/v1/chat/pending", "", "")

	assert.Equal(t, http.StatusUnauthorized, code)
}
