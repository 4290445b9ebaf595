package handler

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/user/aifilm/internal/utils"
)

// SyncMovies kicks off a TMDB movie sync in the background. Admin only.
// Concurrent triggers collapse into the one already running.
func (h *Handler) SyncMovies(c *gin.Context) {
	go func() {
		if _, err := h.tmdb.SyncMovies(context.Background()); err != nil {
			log.Error("movie sync failed", "err", err)
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"detail": "Film senkronizasyonu başlatıldı."})
}

// SyncTVShows kicks off a TMDB show sync in the background. Admin only.
func (h *Handler) SyncTVShows(c *gin.Context) {
	go func() {
		if _, err := h.tmdb.SyncTVShows(context.Background()); err != nil {
			log.Error("tvshow sync failed", "err", err)
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"detail": "Dizi senkronizasyonu başlatıldı."})
}

// ListUsers returns every account. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.repos.User.ListAll()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}
