package highlight

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
	"github.com/taiwoajasa245/pocket-pastor/pkg/response"
)

type HighlightHandler struct {
	service *Service
}

func NewHighlightHandler(service *Service) HighlightHandler {
	return HighlightHandler{service: service}
}

// GetChapterHighlightsHandler godoc
// @Summary List highlighted verses of a chapter
// @Tags highlights
// @Produce json
// @Param bibleId path string true "Bible id"
// @Param chapterId path string true "Chapter id"
// @Success 200 {object} response.APIResponse
// @Router /highlights/{bibleId}/{chapterId} [get]
func (h *HighlightHandler) GetChapterHighlightsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r)
	ch := verse.Chapter{BibleID: chi.URLParam(r, "bibleId"), ChapterID: chi.URLParam(r, "chapterId")}

	set := h.service.LoadChapterHighlights(r.Context(), userID, ch)

	response.Success(w, map[string]interface{}{
		"verse_numbers": set.Sorted(),
	}, "successfully")
}

// SaveHighlightHandler godoc
// @Summary Highlight one verse
// @Tags highlights
// @Accept json
// @Produce json
// @Param body body VerseRequest true "Verse"
// @Success 200 {object} response.APIResponse
// @Router /highlights [post]
func (h *HighlightHandler) SaveHighlightHandler(w http.ResponseWriter, r *http.Request) {
	loc, ok := decodeVerse(w, r)
	if !ok {
		return
	}
	userID, _ := auth.GetUserIDFromContext(r)

	response.Success(w, map[string]bool{
		"success": h.service.SaveHighlight(r.Context(), userID, loc),
	}, "successfully")
}

// RemoveHighlightHandler godoc
// @Summary Remove one verse highlight
// @Tags highlights
// @Accept json
// @Produce json
// @Param body body VerseRequest true "Verse"
// @Success 200 {object} response.APIResponse
// @Router /highlights [delete]
func (h *HighlightHandler) RemoveHighlightHandler(w http.ResponseWriter, r *http.Request) {
	loc, ok := decodeVerse(w, r)
	if !ok {
		return
	}
	userID, _ := auth.GetUserIDFromContext(r)

	response.Success(w, map[string]bool{
		"success": h.service.RemoveHighlight(r.Context(), userID, loc),
	}, "successfully")
}

// ToggleHighlightHandler godoc
// @Summary Toggle highlight for a set of verses
// @Description If any verse is highlighted, all are un-highlighted; otherwise all are highlighted.
// @Tags highlights
// @Accept json
// @Produce json
// @Param body body ToggleRequest true "Verses"
// @Success 200 {object} response.APIResponse
// @Router /highlights/toggle [post]
func (h *HighlightHandler) ToggleHighlightHandler(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !response.Decode(w, r, &req) {
		return
	}
	if req.BibleID == "" || req.ChapterID == "" || len(req.VerseNumbers) == 0 {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"bible_id":      "bible_id is required",
			"chapter_id":    "chapter_id is required",
			"verse_numbers": "at least one verse number is required",
		})
		return
	}
	userID, _ := auth.GetUserIDFromContext(r)
	ch := verse.Chapter{BibleID: req.BibleID, ChapterID: req.ChapterID}

	response.Success(w, h.service.Toggle(r.Context(), userID, ch, req.VerseNumbers), "successfully")
}

func decodeVerse(w http.ResponseWriter, r *http.Request) (verse.Locator, bool) {
	var req VerseRequest
	if !response.Decode(w, r, &req) {
		return verse.Locator{}, false
	}
	if req.BibleID == "" || req.ChapterID == "" || req.VerseNumber == "" {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"bible_id":     "bible_id is required",
			"chapter_id":   "chapter_id is required",
			"verse_number": "verse_number is required",
		})
		return verse.Locator{}, false
	}
	return verse.Locator{BibleID: req.BibleID, ChapterID: req.ChapterID, VerseNumber: req.VerseNumber}, true
}
