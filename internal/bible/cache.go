package bible

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

// CachedProvider is a read-through Redis cache in front of another provider.
// Cache failures are logged and the inner provider is used directly.
type CachedProvider struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

func NewCachedProvider(next Provider, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedProvider {
	return &CachedProvider{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: "chapter:",
		log:    logger.OrNop(log),
	}
}

func (p *CachedProvider) key(bibleID, chapterID string) string {
	return p.prefix + bibleID + ":" + chapterID
}

func (p *CachedProvider) GetChapter(ctx context.Context, bibleID, chapterID string) (*Chapter, error) {
	key := p.key(bibleID, chapterID)

	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ch Chapter
		if err := json.Unmarshal(raw, &ch); err == nil {
			return &ch, nil
		}
		p.log.Warn("discarding unreadable cached chapter", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		p.log.Warn("chapter cache read failed", zap.String("key", key), zap.Error(err))
	}

	ch, err := p.next.GetChapter(ctx, bibleID, chapterID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(ch)
	if err != nil {
		return ch, nil
	}
	if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
		p.log.Warn("chapter cache write failed", zap.String("key", key), zap.Error(err))
	}
	return ch, nil
}
