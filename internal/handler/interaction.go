package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/aifilm/internal/middleware"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/utils"
)

type targetRequest struct {
	ContentType     string `json:"content_type" binding:"required,contenttype"`
	ContentID       int    `json:"content_id" binding:"required,min=1"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=0"`
}

// resolveTarget validates that the referenced title exists and returns the
// movie/show id pair for the row.
func (h *Handler) resolveTarget(c *gin.Context, req targetRequest) (movieID, showID *int, ok bool) {
	switch model.ContentType(req.ContentType) {
	case model.ContentTypeMovie:
		movie, err := h.repos.Movie.FindByID(req.ContentID)
		if err != nil {
			utils.InternalServerError(c, err.Error())
			return nil, nil, false
		}
		if movie == nil {
			utils.NotFound(c, "Film bulunamadı.")
			return nil, nil, false
		}
		return &req.ContentID, nil, true
	case model.ContentTypeTVShow:
		show, err := h.repos.TVShow.FindByID(req.ContentID)
		if err != nil {
			utils.InternalServerError(c, err.Error())
			return nil, nil, false
		}
		if show == nil {
			utils.NotFound(c, "Dizi bulunamadı.")
			return nil, nil, false
		}
		return nil, &req.ContentID, true
	}
	utils.BadRequest(c, "")
	return nil, nil, false
}

// AddHistory records one watch event for the caller.
func (h *Handler) AddHistory(c *gin.Context) {
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	movieID, showID, ok := h.resolveTarget(c, req)
	if !ok {
		return
	}

	entry := &model.WatchHistory{
		UserID:          middleware.GetUserID(c),
		MovieID:         movieID,
		TVShowID:        showID,
		DurationMinutes: req.DurationMinutes,
		WatchedAt:       time.Now(),
	}
	if err := h.repos.History.Add(entry); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListHistory returns the caller's watch history, newest first.
func (h *Handler) ListHistory(c *gin.Context) {
	limit, offset := pagination(c)
	userID := middleware.GetUserID(c)

	entries, err := h.repos.History.ListByUser(userID, limit, offset)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	count, err := h.repos.History.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "results": entries})
}

// DeleteHistory removes one of the caller's history rows.
func (h *Handler) DeleteHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repos.History.Delete(middleware.GetUserID(c), id); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// AddWatchlist saves a title for later. Re-adding is a no-op.
func (h *Handler) AddWatchlist(c *gin.Context) {
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	movieID, showID, ok := h.resolveTarget(c, req)
	if !ok {
		return
	}

	item := &model.WatchlistItem{
		UserID:   middleware.GetUserID(c),
		MovieID:  movieID,
		TVShowID: showID,
		AddedAt:  time.Now(),
	}
	if err := h.repos.Watchlist.Add(item); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListWatchlist returns the caller's saved titles.
func (h *Handler) ListWatchlist(c *gin.Context) {
	limit, offset := pagination(c)

	items, err := h.repos.Watchlist.ListByUser(middleware.GetUserID(c), limit, offset)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteWatchlist removes one saved title.
func (h *Handler) DeleteWatchlist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.repos.Watchlist.Delete(middleware.GetUserID(c), id); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
