package chat

import (
	"net/http"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
	"github.com/taiwoajasa245/pocket-pastor/pkg/response"
)

type ChatHandler struct {
	handoff *RedisHandoff
}

func NewChatHandler(handoff *RedisHandoff) ChatHandler {
	return ChatHandler{handoff: handoff}
}

// PendingPromptsHandler godoc
// @Summary Drain prompts handed over from the reader
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /chat/pending [get]
func (h *ChatHandler) PendingPromptsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized", "user not logged in")
		return
	}

	prompts, err := h.handoff.Pending(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load prompts", nil)
		return
	}
	response.Success(w, prompts, "successfully")
}
