package cluster

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
	"github.com/taiwoajasa245/pocket-pastor/internal/verse"
	"github.com/taiwoajasa245/pocket-pastor/pkg/response"
)

type ClusterHandler struct {
	service *Service
}

func NewClusterHandler(service *Service) ClusterHandler {
	return ClusterHandler{service: service}
}

// GetAllClustersHandler godoc
// @Summary List all favorite clusters of the user
// @Tags clusters
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /clusters [get]
func (h *ClusterHandler) GetAllClustersHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r)
	clusters := h.service.GetAllUserClusters(r.Context(), userID)
	if clusters == nil {
		clusters = []VerseCluster{}
	}
	response.Success(w, clusters, "successfully")
}

// GetChapterClustersHandler godoc
// @Summary List favorite clusters of a chapter
// @Tags clusters
// @Produce json
// @Param bibleId path string true "Bible id"
// @Param chapterId path string true "Chapter id"
// @Success 200 {object} response.APIResponse
// @Router /clusters/{bibleId}/{chapterId} [get]
func (h *ClusterHandler) GetChapterClustersHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r)
	ch := verse.Chapter{BibleID: chi.URLParam(r, "bibleId"), ChapterID: chi.URLParam(r, "chapterId")}

	clusters := h.service.GetChapterClusters(r.Context(), userID, ch)
	if clusters == nil {
		clusters = []VerseCluster{}
	}
	response.Success(w, map[string]interface{}{
		"clusters":      clusters,
		"verse_numbers": h.service.GetClusterVerseNumbers(r.Context(), userID, ch).Sorted(),
	}, "successfully")
}

// CreateClusterHandler godoc
// @Summary Save verses as one favorite cluster
// @Tags clusters
// @Accept json
// @Produce json
// @Param body body CreateClusterRequest true "Cluster"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /clusters [post]
func (h *ClusterHandler) CreateClusterHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateClusterRequest
	if !response.Decode(w, r, &req) {
		return
	}
	if req.BibleID == "" || req.ChapterID == "" || req.Reference == "" || len(req.Verses) == 0 {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"bible_id":   "bible_id is required",
			"chapter_id": "chapter_id is required",
			"reference":  "reference is required",
			"verses":     "at least one verse is required",
		})
		return
	}
	userID, _ := auth.GetUserIDFromContext(r)
	ch := verse.Chapter{BibleID: req.BibleID, ChapterID: req.ChapterID}

	c := h.service.CreateVerseCluster(r.Context(), userID, ch, req.Reference, req.Verses, req.ClusterName)
	if c == nil {
		response.Error(w, http.StatusInternalServerError, "Could not save cluster", nil)
		return
	}
	response.Created(w, c, "cluster created")
}

// DeleteClusterHandler godoc
// @Summary Delete a favorite cluster
// @Tags clusters
// @Produce json
// @Param id path string true "Cluster id"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /clusters/{id} [delete]
func (h *ClusterHandler) DeleteClusterHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r)
	if !h.service.DeleteCluster(r.Context(), userID, chi.URLParam(r, "id")) {
		response.Error(w, http.StatusNotFound, "Cluster not found", nil)
		return
	}
	response.Success(w, map[string]bool{"success": true}, "cluster deleted")
}

// RemoveVersesHandler godoc
// @Summary Remove verses from their clusters
// @Description Clusters left without verses are deleted.
// @Tags clusters
// @Accept json
// @Produce json
// @Param body body RemoveVersesRequest true "Verses"
// @Success 200 {object} response.APIResponse
// @Router /clusters/verses [delete]
func (h *ClusterHandler) RemoveVersesHandler(w http.ResponseWriter, r *http.Request) {
	var req RemoveVersesRequest
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

	if len(req.VerseNumbers) == 1 {
		response.Success(w, h.service.RemoveVerseFromCluster(r.Context(), userID, ch.Verse(req.VerseNumbers[0])), "successfully")
		return
	}
	response.Success(w, map[string]bool{
		"success": h.service.RemoveMultipleVersesFromClusters(r.Context(), userID, ch, req.VerseNumbers),
	}, "successfully")
}

// UpdateOrderHandler godoc
// @Summary Reorder favorite clusters
// @Tags clusters
// @Accept json
// @Produce json
// @Param body body UpdateOrderRequest true "Order"
// @Success 200 {object} response.APIResponse
// @Router /clusters/order [put]
func (h *ClusterHandler) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if !response.Decode(w, r, &req) {
		return
	}
	userID, _ := auth.GetUserIDFromContext(r)
	response.Success(w, map[string]bool{
		"success": h.service.UpdateClusterOrder(r.Context(), userID, req.Order),
	}, "successfully")
}

// ToggleFavoriteHandler godoc
// @Summary Toggle favorite for a set of verses
// @Description If any verse is already favorited, all are unfavorited; otherwise one cluster is created.
// @Tags clusters
// @Accept json
// @Produce json
// @Param body body ToggleFavoriteRequest true "Verses"
// @Success 200 {object} response.APIResponse
// @Router /clusters/toggle [post]
func (h *ClusterHandler) ToggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var req ToggleFavoriteRequest
	if !response.Decode(w, r, &req) {
		return
	}
	if req.BibleID == "" || req.ChapterID == "" || req.ChapterReference == "" || len(req.Verses) == 0 {
		response.Error(w, http.StatusBadRequest, "Missing required fields", map[string]string{
			"bible_id":          "bible_id is required",
			"chapter_id":        "chapter_id is required",
			"chapter_reference": "chapter_reference is required",
			"verses":            "at least one verse is required",
		})
		return
	}
	userID, _ := auth.GetUserIDFromContext(r)
	ch := verse.Chapter{BibleID: req.BibleID, ChapterID: req.ChapterID}

	response.Success(w, h.service.ToggleFavorite(r.Context(), userID, ch, req.ChapterReference, req.Verses), "successfully")
}
