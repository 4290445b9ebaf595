package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/user/aifilm/internal/config"
	"github.com/user/aifilm/internal/handler"
	"github.com/user/aifilm/internal/middleware"
)

// Setup builds the gin engine with all middleware and routes.
func Setup(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Security())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.JWTExpiry.Seconds()),
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("aifilm_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/refresh", middleware.RequireAuth(cfg.AppSecret), h.Refresh)
		auth.GET("/profile", middleware.RequireAuth(cfg.AppSecret), h.Profile)
	}

	// Public catalog reads. OptionalAuth lets the token refresh slide on
	// browsing without blocking anonymous users.
	public := api.Group("", middleware.OptionalAuth(cfg.AppSecret))
	{
		public.GET("/movies", h.ListMovies)
		public.GET("/movies/trending", h.TrendingMovies)
		public.GET("/movies/search", h.SearchMovies)
		public.GET("/movies/:id", h.MovieDetail)
		public.GET("/movies/:id/reviews", h.ListMovieReviews)
		public.GET("/movies/:id/like_count", h.MovieLikeCount)
		public.GET("/movies/:id/comment_count", h.MovieCommentCount)
		public.GET("/movies/:id/ai_tip", h.MovieAITip)

		public.GET("/tvshows", h.ListTVShows)
		public.GET("/tvshows/trending", h.TrendingTVShows)
		public.GET("/tvshows/search", h.SearchTVShows)
		public.GET("/tvshows/:id", h.TVShowDetail)
		public.GET("/tvshows/:id/reviews", h.ListTVShowReviews)
		public.GET("/tvshows/:id/comment_count", h.TVShowCommentCount)
		public.GET("/tvshows/:id/ai_tip", h.TVShowAITip)

		public.GET("/genres", h.ListGenres)

		public.POST("/recommendation/ai", h.RecommendAI)
		public.POST("/chatbot", h.Chatbot)
	}

	authed := api.Group("", middleware.RequireAuth(cfg.AppSecret))
	{
		authed.POST("/movies/:id/reviews", h.CreateMovieReview)
		authed.POST("/movies/:id/like", h.ToggleMovieLike)
		authed.POST("/tvshows/:id/reviews", h.CreateTVShowReview)
		authed.POST("/reviews", h.CreateReview)
		authed.DELETE("/reviews/:id", h.DeleteReview)

		authed.POST("/history", h.AddHistory)
		authed.GET("/history", h.ListHistory)
		authed.DELETE("/history/:id", h.DeleteHistory)

		authed.POST("/watchlist", h.AddWatchlist)
		authed.GET("/watchlist", h.ListWatchlist)
		authed.DELETE("/watchlist/:id", h.DeleteWatchlist)
	}

	admin := api.Group("/admin", middleware.RequireAuth(cfg.AppSecret), middleware.RequireAdmin())
	{
		admin.POST("/movies", h.CreateMovie)
		admin.PUT("/movies/:id", h.UpdateMovie)
		admin.DELETE("/movies/:id", h.DeleteMovie)
		admin.POST("/tvshows", h.CreateTVShow)
		admin.PUT("/tvshows/:id", h.UpdateTVShow)
		admin.DELETE("/tvshows/:id", h.DeleteTVShow)

		admin.POST("/sync/movies", h.SyncMovies)
		admin.POST("/sync/tvshows", h.SyncTVShows)
		admin.GET("/users", h.ListUsers)
	}

	return r
}
