package bible

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteProvider reads chapters from an API.Bible compatible HTTP API.
type RemoteProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRemoteProvider(baseURL, apiKey string, client *http.Client) *RemoteProvider {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &RemoteProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

type chapterEnvelope struct {
	Data struct {
		ID        string `json:"id"`
		BibleID   string `json:"bibleId"`
		Reference string `json:"reference"`
		Content   string `json:"content"`
	} `json:"data"`
}

func (p *RemoteProvider) GetChapter(ctx context.Context, bibleID, chapterID string) (*Chapter, error) {
	endpoint := fmt.Sprintf("%s/bibles/%s/chapters/%s?content-type=html&include-verse-numbers=true",
		p.baseURL, url.PathEscape(bibleID), url.PathEscape(chapterID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build chapter request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("api-key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chapter %s/%s: %w", bibleID, chapterID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrChapterNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch chapter %s/%s: unexpected status %d", bibleID, chapterID, resp.StatusCode)
	}

	var env chapterEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode chapter %s/%s: %w", bibleID, chapterID, err)
	}

	ch := &Chapter{
		BibleID:   env.Data.BibleID,
		ChapterID: env.Data.ID,
		Reference: env.Data.Reference,
		Text:      env.Data.Content,
	}
	if ch.BibleID == "" {
		ch.BibleID = bibleID
	}
	if ch.ChapterID == "" {
		ch.ChapterID = chapterID
	}
	return ch, nil
}
