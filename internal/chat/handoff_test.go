package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
)

func setupHandoff(t *testing.T) (*RedisHandoff, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisHandoff(client), mr
}

func TestOpenThenPending(t *testing.T) {
	h, mr := setupHandoff(t)
	ctx := context.Background()

	require.NoError(t, h.Open(ctx, 3, "For God so loved the world", "John 3:16"))
	require.NoError(t, h.Open(ctx, 3, "In the beginning", "Genesis 1:1"))
	assert.True(t, mr.Exists("chat:pending:3"))

	prompts, err := h.Pending(ctx, 3)
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, "John 3:16", prompts[0].Reference)
	assert.Equal(t, "In the beginning", prompts[1].Text)

	again, err := h.Pending(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestOpenRejectsBlankText(t *testing.T) {
	h, _ := setupHandoff(t)

	assert.ErrorIs(t, h.Open(context.Background(), 3, "   ", "John 3:16"), ErrEmptyPrompt)
}

func TestQueueIsBounded(t *testing.T) {
	h, _ := setupHandoff(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, h.Open(ctx, 1, "prompt "+strconv.Itoa(i), "Psalm 23:1"))
	}

	prompts, err := h.Pending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, prompts, 20)
	assert.Equal(t, "prompt 5", prompts[0].Text)
	assert.Equal(t, "prompt 24", prompts[19].Text)
}

func TestPendingPromptsHandler(t *testing.T) {
	h, _ := setupHandoff(t)
	tokens := auth.NewTokens("secret", time.Hour)
	require.NoError(t, h.Open(context.Background(), 5, "The LORD is my shepherd", "Psalm 23:1"))
	handler := NewChatHandler(h)
	router := tokens.AuthMiddleware(http.HandlerFunc(handler.PendingPromptsHandler))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/pending", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := tokens.Issue(5, "reader@example.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/chat/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data []Prompt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Psalm 23:1", out.Data[0].Reference)
}
