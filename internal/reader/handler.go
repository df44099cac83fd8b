package reader

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
	"github.com/taiwoajasa245/pocket-pastor/internal/bible"
	"github.com/taiwoajasa245/pocket-pastor/internal/selection"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
	"github.com/taiwoajasa245/pocket-pastor/pkg/response"
)

type OpenRequest struct {
	BibleID   string             `json:"bible_id"`
	ChapterID string             `json:"chapter_id"`
	Verse     string             `json:"verse,omitempty"`
	Query     string             `json:"q,omitempty"`
	Viewport  selection.Viewport `json:"viewport"`
	Bar       selection.Size     `json:"bar"`
}

type TapRequest struct {
	VerseNumber string         `json:"verse_number"`
	Rect        selection.Rect `json:"rect"`
}

type SelectTextRequest struct {
	Range selection.Range `json:"range"`
	Rect  selection.Rect  `json:"rect"`
}

type SessionResponse struct {
	SessionID string   `json:"session_id,omitempty"`
	View      Rendered `json:"view"`
	Scroll    *Scroll  `json:"scroll,omitempty"`
	Outcome   *Outcome `json:"outcome,omitempty"`
}

type ReaderHandler struct {
	service  *Service
	sessions *Sessions
}

func NewReaderHandler(service *Service, sessions *Sessions) ReaderHandler {
	return ReaderHandler{service: service, sessions: sessions}
}

func (h *ReaderHandler) load(w http.ResponseWriter, r *http.Request, req OpenRequest) (*View, bool) {
	userID, _ := auth.GetUserIDFromContext(r)
	ch := verse.Chapter{BibleID: req.BibleID, ChapterID: req.ChapterID}

	v, err := h.service.Load(r.Context(), userID, ch, Options{
		TargetVerse: req.Verse,
		Query:       req.Query,
		Viewport:    req.Viewport,
		Bar:         req.Bar,
	})
	switch {
	case errors.Is(err, bible.ErrChapterNotFound):
		response.Error(w, http.StatusNotFound, "Chapter not found", nil)
		return nil, false
	case err != nil:
		response.Error(w, http.StatusBadGateway, "Could not load chapter", nil)
		return nil, false
	}
	return v, true
}

func withScroll(v *View) *Scroll {
	if s, ok := v.InitialScroll(); ok {
		return &s
	}
	return nil
}

// GetChapterHandler godoc
// @Summary Segmented and decorated chapter
// @Tags chapters
// @Produce json
// @Param bibleId path string true "Bible id"
// @Param chapterId path string true "Chapter id"
// @Param verse query string false "Target verse, list or range"
// @Param q query string false "Search terms to decorate in the target verses"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /chapters/{bibleId}/{chapterId} [get]
func (h *ReaderHandler) GetChapterHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := h.load(w, r, OpenRequest{
		BibleID:   chi.URLParam(r, "bibleId"),
		ChapterID: chi.URLParam(r, "chapterId"),
		Verse:     r.URL.Query().Get("verse"),
		Query:     r.URL.Query().Get("q"),
	})
	if !ok {
		return
	}
	response.Success(w, SessionResponse{View: v.Render(), Scroll: withScroll(v)}, "successfully")
}

// OpenSessionHandler godoc
// @Summary Open a chapter in an interactive reader session
// @Tags reader
// @Accept json
// @Produce json
// @Param body body OpenRequest true "Chapter"
// @Success 201 {object} response.APIResponse
// @Router /reader/sessions [post]
func (h *ReaderHandler) OpenSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req OpenRequest
	if !response.Decode(w, r, &req) {
		return
	}
	if req.BibleID == "" || req.ChapterID == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"bible_id":   "bible_id is required",
			"chapter_id": "chapter_id is required",
		})
		return
	}
	v, ok := h.load(w, r, req)
	if !ok {
		return
	}
	id := h.sessions.Add(v)
	response.Created(w, SessionResponse{SessionID: id, View: v.Render(), Scroll: withScroll(v)}, "session opened")
}

func (h *ReaderHandler) view(w http.ResponseWriter, r *http.Request) (*View, bool) {
	userID, _ := auth.GetUserIDFromContext(r)
	v, ok := h.sessions.Get(chi.URLParam(r, "id"), userID)
	if !ok {
		response.Error(w, http.StatusNotFound, "Reader session not found", nil)
		return nil, false
	}
	return v, true
}

// GetSessionHandler godoc
// @Summary Current render of a reader session
// @Tags reader
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} response.APIResponse
// @Router /reader/sessions/{id} [get]
func (h *ReaderHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	response.Success(w, SessionResponse{View: v.Render()}, "successfully")
}

// TapVerseHandler godoc
// @Summary Toggle a verse in the multi-select set
// @Tags reader
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param body body TapRequest true "Tap"
// @Success 200 {object} response.APIResponse
// @Router /reader/sessions/{id}/tap [post]
func (h *ReaderHandler) TapVerseHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	var req TapRequest
	if !response.Decode(w, r, &req) {
		return
	}
	if _, err := v.TapVerse(req.VerseNumber, req.Rect); err != nil {
		response.Error(w, http.StatusBadRequest, "Unknown verse", map[string]string{"verse_number": err.Error()})
		return
	}
	response.Success(w, SessionResponse{View: v.Render()}, "successfully")
}

// SelectTextHandler godoc
// @Summary Start a free-text selection
// @Tags reader
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param body body SelectTextRequest true "Range"
// @Success 200 {object} response.APIResponse
// @Router /reader/sessions/{id}/select-text [post]
func (h *ReaderHandler) SelectTextHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	var req SelectTextRequest
	if !response.Decode(w, r, &req) {
		return
	}
	if _, err := v.SelectText(req.Range, req.Rect); err != nil {
		response.Error(w, http.StatusBadRequest, "Unknown verse", map[string]string{"range": err.Error()})
		return
	}
	response.Success(w, SessionResponse{View: v.Render()}, "successfully")
}

// DismissSearchHighlightHandler godoc
// @Summary Remove the transient search decoration of a verse
// @Tags reader
// @Produce json
// @Param id path string true "Session id"
// @Param verse path string true "Verse number"
// @Success 200 {object} response.APIResponse
// @Router /reader/sessions/{id}/search-highlights/{verse} [delete]
func (h *ReaderHandler) DismissSearchHighlightHandler(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	v.DismissSearchHighlight(chi.URLParam(r, "verse"))
	response.Success(w, SessionResponse{View: v.Render()}, "successfully")
}

// ActionHandler godoc
// @Summary Dispatch an action bar intent
// @Description action is one of cancel, highlight, favorite, ask, copy. The selection is cleared afterwards.
// @Tags reader
// @Produce json
// @Param id path string true "Session id"
// @Param action path string true "Intent"
// @Success 200 {object} response.APIResponse
// @Router /reader/sessions/{id}/{action} [post]
func (h *ReaderHandler) ActionHandler(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := h.view(w, r)
		if !ok {
			return
		}

		var out Outcome
		switch action {
		case ActionCancel:
			out = v.Cancel()
		case ActionHighlight:
			out = v.ToggleHighlight(r.Context())
		case ActionFavorite:
			out = v.ToggleFavorite(r.Context())
		case ActionAsk:
			out = v.AskAI(r.Context())
		case ActionCopy:
			out = v.Copy()
		default:
			response.Error(w, http.StatusNotFound, "Unknown action", nil)
			return
		}
		response.Success(w, SessionResponse{View: v.Render(), Outcome: &out}, "successfully")
	}
}
