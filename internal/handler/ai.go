package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/user/aifilm/internal/service"
	"github.com/user/aifilm/internal/utils"
)

type recommendRequest struct {
	Preference string `json:"preference"`
}

type chatbotRequest struct {
	Message string `json:"message" binding:"required"`
}

// MovieAITip returns an AI summary of one movie's reviews.
func (h *Handler) MovieAITip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tip, err := h.tips.MovieTip(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c, "")
			return
		}
		log.Error("movie tip failed", "movie_id", id, "err", err)
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ai_tip": tip})
}

// TVShowAITip returns an AI summary of one show's reviews.
func (h *Handler) TVShowAITip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tip, err := h.tips.TVShowTip(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c, "")
			return
		}
		log.Error("tvshow tip failed", "tvshow_id", id, "err", err)
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ai_tip": tip})
}

// RecommendAI matches the caller's free-text preference against the catalog.
func (h *Handler) RecommendAI(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Tercih boş olamaz.")
		return
	}

	result, err := h.tips.Recommend(c.Request.Context(), req.Preference)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPreference) {
			utils.BadRequest(c, "Tercih boş olamaz.")
			return
		}
		log.Error("recommendation failed", "err", err)
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Chatbot answers a free-form catalog question.
func (h *Handler) Chatbot(c *gin.Context) {
	var req chatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Mesaj boş olamaz.")
		return
	}

	answer, err := h.chatbot.Answer(c.Request.Context(), req.Message)
	if err != nil {
		log.Error("chatbot failed", "err", err)
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": answer})
}
