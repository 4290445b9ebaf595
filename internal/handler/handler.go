package handler

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/user/aifilm/internal/config"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
	"github.com/user/aifilm/internal/service"
	"github.com/user/aifilm/internal/utils"
)

// Handler carries the dependencies of every HTTP endpoint. Services are
// constructed once in main and injected here.
type Handler struct {
	cfg        *config.Config
	repos      *repository.Repositories
	similarity *service.SimilarityService
	tips       *service.TipService
	chatbot    *service.ChatbotService
	tmdb       *service.TMDBService

	movieSearchCache *utils.SearchCache[[]model.Movie]
	showSearchCache  *utils.SearchCache[[]model.TVShow]
}

func NewHandler(cfg *config.Config, repos *repository.Repositories, similarity *service.SimilarityService, tips *service.TipService, chatbot *service.ChatbotService, tmdb *service.TMDBService) *Handler {
	return &Handler{
		cfg:              cfg,
		repos:            repos,
		similarity:       similarity,
		tips:             tips,
		chatbot:          chatbot,
		tmdb:             tmdb,
		movieSearchCache: utils.NewSearchCache[[]model.Movie](256, 10*time.Minute),
		showSearchCache:  utils.NewSearchCache[[]model.TVShow](256, 10*time.Minute),
	}
}

// RegisterValidators installs the custom binding validators.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("contenttype", func(fl validator.FieldLevel) bool {
			return model.ContentType(fl.Field().String()).Valid()
		})
	}
}
