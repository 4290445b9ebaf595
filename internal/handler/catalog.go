package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/utils"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	trendingLimit    = 4
	searchLimit      = 20
	trendingCacheTTL = 5 * time.Minute
)

func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return size, (page - 1) * size
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// ListMovies returns one page of the catalog, most popular first.
func (h *Handler) ListMovies(c *gin.Context) {
	limit, offset := pagination(c)

	movies, err := h.repos.Movie.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	count, err := h.repos.Movie.Count()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "results": movies})
}

// MovieDetail returns one movie together with its similar titles.
func (h *Handler) MovieDetail(c *gin.Context) {
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

	similar, err := h.similarity.SimilarMovies(id)
	if err != nil {
		log.Warn("similar movies lookup failed", "movie_id", id, "err", err)
		similar = nil
	}

	c.JSON(http.StatusOK, gin.H{"movie": movie, "similar": similar})
}

// TrendingMovies returns the most popular titles, cached briefly.
func (h *Handler) TrendingMovies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(trendingLimit)))
	if limit < 1 || limit > maxPageSize {
		limit = trendingLimit
	}

	cacheKey := "trending:movies:" + strconv.Itoa(limit)
	if cached, found := utils.CacheGet(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	movies, err := h.repos.Movie.Trending(limit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.CacheSet(cacheKey, movies, trendingCacheTTL)
	c.JSON(http.StatusOK, movies)
}

// SearchMovies does a case-insensitive title search with an LRU cache in
// front of the database.
func (h *Handler) SearchMovies(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		utils.BadRequest(c, "Arama terimi boş olamaz.")
		return
	}

	key := strings.ToLower(q)
	if cached, found := h.movieSearchCache.Get(key); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	movies, err := h.repos.Movie.SearchByTitle(q, searchLimit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	h.movieSearchCache.Set(key, movies)
	c.JSON(http.StatusOK, movies)
}

// ListTVShows returns one page of the show catalog, most popular first.
func (h *Handler) ListTVShows(c *gin.Context) {
	limit, offset := pagination(c)

	shows, err := h.repos.TVShow.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	count, err := h.repos.TVShow.Count()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "results": shows})
}

// TVShowDetail returns one show together with its similar titles.
func (h *Handler) TVShowDetail(c *gin.Context) {
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

	similar, err := h.similarity.SimilarTVShows(id)
	if err != nil {
		log.Warn("similar tvshows lookup failed", "tvshow_id", id, "err", err)
		similar = nil
	}

	c.JSON(http.StatusOK, gin.H{"tvshow": show, "similar": similar})
}

// TrendingTVShows returns the most popular shows, cached briefly.
func (h *Handler) TrendingTVShows(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(trendingLimit)))
	if limit < 1 || limit > maxPageSize {
		limit = trendingLimit
	}

	cacheKey := "trending:tvshows:" + strconv.Itoa(limit)
	if cached, found := utils.CacheGet(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	shows, err := h.repos.TVShow.Trending(limit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.CacheSet(cacheKey, shows, trendingCacheTTL)
	c.JSON(http.StatusOK, shows)
}

// SearchTVShows mirrors SearchMovies for shows.
func (h *Handler) SearchTVShows(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		utils.BadRequest(c, "Arama terimi boş olamaz.")
		return
	}

	key := strings.ToLower(q)
	if cached, found := h.showSearchCache.Get(key); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	shows, err := h.repos.TVShow.SearchByTitle(q, searchLimit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	h.showSearchCache.Set(key, shows)
	c.JSON(http.StatusOK, shows)
}

// ListGenres returns every genre, sorted by name.
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.repos.Genre.ListAll()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, genres)
}

// CreateMovie adds a catalog row by hand. Admin only.
func (h *Handler) CreateMovie(c *gin.Context) {
	var movie model.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if movie.Title == "" || movie.TMDBID == 0 {
		utils.BadRequest(c, "title ve tmdb_id alanları zorunludur.")
		return
	}

	if err := h.repos.Movie.Upsert(&movie, movie.Genres); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, movie)
}

// UpdateMovie overwrites an existing row. Admin only.
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if existing == nil {
		utils.NotFound(c, "")
		return
	}

	var movie model.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	movie.ID = existing.ID
	movie.TMDBID = existing.TMDBID

	if err := h.repos.Movie.Upsert(&movie, movie.Genres); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movie)
}

// DeleteMovie removes a row and its associations. Admin only.
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if existing == nil {
		utils.NotFound(c, "")
		return
	}

	if err := h.repos.Movie.Delete(id); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateTVShow adds a show row by hand. Admin only.
func (h *Handler) CreateTVShow(c *gin.Context) {
	var show model.TVShow
	if err := c.ShouldBindJSON(&show); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if show.Name == "" || show.TMDBID == 0 {
		utils.BadRequest(c, "name ve tmdb_id alanları zorunludur.")
		return
	}

	if err := h.repos.TVShow.Upsert(&show, show.Genres); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, show)
}

// UpdateTVShow overwrites an existing show row. Admin only.
func (h *Handler) UpdateTVShow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.repos.TVShow.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if existing == nil {
		utils.NotFound(c, "")
		return
	}

	var show model.TVShow
	if err := c.ShouldBindJSON(&show); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	show.ID = existing.ID
	show.TMDBID = existing.TMDBID

	if err := h.repos.TVShow.Upsert(&show, show.Genres); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, show)
}

// DeleteTVShow removes a show row. Admin only.
func (h *Handler) DeleteTVShow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.repos.TVShow.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if existing == nil {
		utils.NotFound(c, "")
		return
	}

	if err := h.repos.TVShow.Delete(id); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
