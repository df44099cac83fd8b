// Package chat hands selected verses over to the chat surface.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrEmptyPrompt = errors.New("empty prompt")

// Prompt is a pending question seeded from a verse selection.
type Prompt struct {
	Text      string    `json:"text"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// Handoff opens the chat collaborator with the selected text.
type Handoff interface {
	Open(ctx context.Context, userID int, selectedText, reference string) error
}

// RedisHandoff queues prompts on a per-user Redis list that the chat surface
// drains with Pending.
type RedisHandoff struct {
	client  *redis.Client
	prefix  string
	maxQLen int64
	ttl     time.Duration
}

func NewRedisHandoff(client *redis.Client) *RedisHandoff {
	return &RedisHandoff{
		client:  client,
		prefix:  "chat:pending:",
		maxQLen: 20,
		ttl:     24 * time.Hour,
	}
}

func (h *RedisHandoff) key(userID int) string {
	return h.prefix + strconv.Itoa(userID)
}

func (h *RedisHandoff) Open(ctx context.Context, userID int, selectedText, reference string) error {
	if strings.TrimSpace(selectedText) == "" {
		return ErrEmptyPrompt
	}
	data, err := json.Marshal(Prompt{Text: selectedText, Reference: reference, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal prompt: %w", err)
	}

	key := h.key(userID)
	pipe := h.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -h.maxQLen, -1)
	pipe.Expire(ctx, key, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("queue prompt: %w", err)
	}
	return nil
}

// Pending returns and removes the queued prompts of userID, oldest first.
func (h *RedisHandoff) Pending(ctx context.Context, userID int) ([]Prompt, error) {
	key := h.key(userID)
	pipe := h.client.TxPipeline()
	items := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain prompts: %w", err)
	}

	prompts := make([]Prompt, 0, len(items.Val()))
	for _, raw := range items.Val() {
		var p Prompt
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			continue
		}
		prompts = append(prompts, p)
	}
	return prompts, nil
}
