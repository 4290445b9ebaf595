package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/user/aifilm/internal/middleware"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/utils"
)

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment string `json:"comment"`
}

type reviewCreateRequest struct {
	ContentType string `json:"content_type" binding:"required,contenttype"`
	ContentID   int    `json:"content_id" binding:"required,min=1"`
	Rating      int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment     string `json:"comment"`
}

// CreateReview stores a review addressed by content type + id in the body.
func (h *Handler) CreateReview(c *gin.Context) {
	var req reviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var target model.ReviewTarget
	switch model.ContentType(req.ContentType) {
	case model.ContentTypeMovie:
		movie, err := h.repos.Movie.FindByID(req.ContentID)
		if err != nil {
			utils.InternalServerError(c, err.Error())
			return
		}
		if movie == nil {
			utils.NotFound(c, "Film bulunamadı.")
			return
		}
		target = model.MovieTarget(req.ContentID)
	case model.ContentTypeTVShow:
		show, err := h.repos.TVShow.FindByID(req.ContentID)
		if err != nil {
			utils.InternalServerError(c, err.Error())
			return
		}
		if show == nil {
			utils.NotFound(c, "Dizi bulunamadı.")
			return
		}
		target = model.TVShowTarget(req.ContentID)
	}

	h.storeReview(c, target, req.Rating, req.Comment)
}

// CreateMovieReview stores a review for one movie. One review per user per
// title; a second attempt is rejected.
func (h *Handler) CreateMovieReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	movie, err := h.repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	h.createReview(c, model.MovieTarget(id))
}

// CreateTVShowReview stores a review for one show.
func (h *Handler) CreateTVShowReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	show, err := h.repos.TVShow.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if show == nil {
		utils.NotFound(c, "")
		return
	}

	h.createReview(c, model.TVShowTarget(id))
}

func (h *Handler) createReview(c *gin.Context, target model.ReviewTarget) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	h.storeReview(c, target, req.Rating, req.Comment)
}

func (h *Handler) storeReview(c *gin.Context, target model.ReviewTarget, rating int, comment string) {
	review, err := model.NewReview(middleware.GetUserID(c), target, rating, comment)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.repos.Review.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "Bu yapım için zaten bir yorumunuz var.")
			return
		}
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListMovieReviews returns the reviews of one movie, newest first.
func (h *Handler) ListMovieReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reviews, err := h.repos.Review.ListByTarget(model.MovieTarget(id))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListTVShowReviews returns the reviews of one show, newest first.
func (h *Handler) ListTVShowReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reviews, err := h.repos.Review.ListByTarget(model.TVShowTarget(id))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// DeleteReview removes the caller's own review.
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	matched, err := h.repos.Review.Delete(middleware.GetUserID(c), id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if !matched {
		utils.NotFound(c, "")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleMovieLike flips the caller's like on one movie.
func (h *Handler) ToggleMovieLike(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	movie, err := h.repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if movie == nil {
		utils.NotFound(c, "")
		return
	}

	liked, err := h.repos.Like.Toggle(middleware.GetUserID(c), id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	if liked {
		c.JSON(http.StatusCreated, gin.H{"detail": "Beğeni eklendi.", "liked": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Beğeni kaldırıldı.", "liked": false})
}

// MovieLikeCount returns how many users liked one movie.
func (h *Handler) MovieLikeCount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	count, err := h.repos.Like.CountByMovie(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"like_count": count})
}

// MovieCommentCount returns how many reviews one movie has.
func (h *Handler) MovieCommentCount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	count, err := h.repos.Review.CountByTarget(model.MovieTarget(id))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment_count": count})
}

// TVShowCommentCount returns how many reviews one show has.
func (h *Handler) TVShowCommentCount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	count, err := h.repos.Review.CountByTarget(model.TVShowTarget(id))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment_count": count})
}
