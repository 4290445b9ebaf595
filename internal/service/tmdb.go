package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/user/aifilm/internal/config"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
	"github.com/user/aifilm/internal/utils"
)

const maxCastMembers = 10

// tmdbListResponse is the shape shared by the discover endpoints.
type tmdbListResponse struct {
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	Results      []struct {
		ID int `json:"id"`
	} `json:"results"`
}

type tmdbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tmdbVideos struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

type tmdbCredits struct {
	Cast []struct {
		Name  string `json:"name"`
		Order int    `json:"order"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

type tmdbExternalIDs struct {
	IMDbID      string `json:"imdb_id"`
	FacebookID  string `json:"facebook_id"`
	InstagramID string `json:"instagram_id"`
	TwitterID   string `json:"twitter_id"`
}

// tmdbMovieDetail is the movie detail payload with
// append_to_response=videos,credits,external_ids.
type tmdbMovieDetail struct {
	ID               int             `json:"id"`
	Title            string          `json:"title"`
	OriginalTitle    string          `json:"original_title"`
	Overview         string          `json:"overview"`
	Tagline          string          `json:"tagline"`
	ReleaseDate      string          `json:"release_date"`
	Runtime          int             `json:"runtime"`
	Homepage         string          `json:"homepage"`
	Status           string          `json:"status"`
	OriginalLanguage string          `json:"original_language"`
	Budget           int64           `json:"budget"`
	Revenue          int64           `json:"revenue"`
	Popularity       float64         `json:"popularity"`
	VoteAverage      float64         `json:"vote_average"`
	VoteCount        int             `json:"vote_count"`
	PosterPath       string          `json:"poster_path"`
	BackdropPath     string          `json:"backdrop_path"`
	Genres           []tmdbGenre     `json:"genres"`
	Videos           tmdbVideos      `json:"videos"`
	Credits          tmdbCredits     `json:"credits"`
	ExternalIDs      tmdbExternalIDs `json:"external_ids"`
}

type tmdbTVDetail struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	OriginalName     string          `json:"original_name"`
	Overview         string          `json:"overview"`
	FirstAirDate     string          `json:"first_air_date"`
	LastAirDate      string          `json:"last_air_date"`
	EpisodeRunTime   []int           `json:"episode_run_time"`
	NumberOfSeasons  int             `json:"number_of_seasons"`
	NumberOfEpisodes int             `json:"number_of_episodes"`
	Homepage         string          `json:"homepage"`
	Status           string          `json:"status"`
	OriginalLanguage string          `json:"original_language"`
	Popularity       float64         `json:"popularity"`
	VoteAverage      float64         `json:"vote_average"`
	VoteCount        int             `json:"vote_count"`
	PosterPath       string          `json:"poster_path"`
	BackdropPath     string          `json:"backdrop_path"`
	Genres           []tmdbGenre     `json:"genres"`
	Videos           tmdbVideos      `json:"videos"`
	Credits          tmdbCredits     `json:"credits"`
	ExternalIDs      tmdbExternalIDs `json:"external_ids"`
}

// TMDBService mirrors popular movies and shows from TMDB into the local
// catalog. Syncs are idempotent, keyed on TMDB ids, and rate limited so a
// full run stays under the upstream quota. Concurrent trigger requests
// collapse into a single in-flight sync per kind.
type TMDBService struct {
	cfg     *config.Config
	movies  *repository.MovieRepository
	shows   *repository.TVShowRepository
	genres  *repository.GenreRepository
	client  *utils.HTTPClient
	limiter *rate.Limiter
	group   singleflight.Group
}

func NewTMDBService(cfg *config.Config, repos *repository.Repositories) *TMDBService {
	return &TMDBService{
		cfg:    cfg,
		movies: repos.Movie,
		shows:  repos.TVShow,
		genres: repos.Genre,
		client: utils.NewHTTPClient(15 * time.Second),
		// TMDB allows roughly 50 req/s, stay well under it.
		limiter: rate.NewLimiter(rate.Limit(20), 5),
	}
}

// SyncMovies walks the discover pages and upserts every movie it can fetch.
// Individual failures are logged and skipped so one bad row never aborts a
// run. Returns the number of upserted rows.
func (s *TMDBService) SyncMovies(ctx context.Context) (int, error) {
	v, err, _ := s.group.Do("sync-movies", func() (any, error) {
		return s.syncMovies(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// SyncTVShows is the show counterpart of SyncMovies.
func (s *TMDBService) SyncTVShows(ctx context.Context) (int, error) {
	v, err, _ := s.group.Do("sync-tvshows", func() (any, error) {
		return s.syncTVShows(ctx)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *TMDBService) syncMovies(ctx context.Context) (int, error) {
	synced := 0
	for page := 1; page <= s.cfg.TMDBMoviePages; page++ {
		var list tmdbListResponse
		if err := s.getJSON(ctx, "/discover/movie", url.Values{
			"sort_by": {"popularity.desc"},
			"page":    {fmt.Sprint(page)},
		}, &list); err != nil {
			return synced, fmt.Errorf("tmdb: discover movies page %d: %w", page, err)
		}

		for _, item := range list.Results {
			if err := s.syncMovie(ctx, item.ID); err != nil {
				if ctx.Err() != nil {
					return synced, ctx.Err()
				}
				log.Warn("movie sync skipped", "tmdb_id", item.ID, "err", err)
				continue
			}
			synced++
		}

		if page >= list.TotalPages {
			break
		}
	}
	log.Info("movie sync finished", "synced", synced)
	return synced, nil
}

func (s *TMDBService) syncTVShows(ctx context.Context) (int, error) {
	synced := 0
	for page := 1; page <= s.cfg.TMDBTVPages; page++ {
		var list tmdbListResponse
		if err := s.getJSON(ctx, "/discover/tv", url.Values{
			"sort_by": {"popularity.desc"},
			"page":    {fmt.Sprint(page)},
		}, &list); err != nil {
			return synced, fmt.Errorf("tmdb: discover tv page %d: %w", page, err)
		}

		for _, item := range list.Results {
			if err := s.syncTVShow(ctx, item.ID); err != nil {
				if ctx.Err() != nil {
					return synced, ctx.Err()
				}
				log.Warn("tvshow sync skipped", "tmdb_id", item.ID, "err", err)
				continue
			}
			synced++
		}

		if page >= list.TotalPages {
			break
		}
	}
	log.Info("tvshow sync finished", "synced", synced)
	return synced, nil
}

func (s *TMDBService) syncMovie(ctx context.Context, tmdbID int) error {
	var detail tmdbMovieDetail
	if err := s.getJSON(ctx, fmt.Sprintf("/movie/%d", tmdbID), url.Values{
		"append_to_response": {"videos,credits,external_ids"},
	}, &detail); err != nil {
		return err
	}

	movie := &model.Movie{
		TMDBID:           detail.ID,
		Title:            detail.Title,
		OriginalTitle:    detail.OriginalTitle,
		Overview:         detail.Overview,
		Tagline:          detail.Tagline,
		ReleaseDate:      parseTMDBDate(detail.ReleaseDate),
		Homepage:         detail.Homepage,
		Status:           detail.Status,
		OriginalLanguage: detail.OriginalLanguage,
		Budget:           detail.Budget,
		Revenue:          detail.Revenue,
		Popularity:       detail.Popularity,
		VoteAverage:      detail.VoteAverage,
		VoteCount:        detail.VoteCount,
		PosterPath:       detail.PosterPath,
		BackdropPath:     detail.BackdropPath,
		TrailerURL:       trailerURL(detail.Videos),
		IMDbID:           detail.ExternalIDs.IMDbID,
		FacebookID:       detail.ExternalIDs.FacebookID,
		InstagramID:      detail.ExternalIDs.InstagramID,
		TwitterID:        detail.ExternalIDs.TwitterID,
		Director:         director(detail.Credits),
		Cast:             topCast(detail.Credits),
	}
	if detail.Runtime > 0 {
		movie.Runtime = &detail.Runtime
	}

	genres, err := s.resolveGenres(detail.Genres)
	if err != nil {
		return err
	}
	return s.movies.Upsert(movie, genres)
}

func (s *TMDBService) syncTVShow(ctx context.Context, tmdbID int) error {
	var detail tmdbTVDetail
	if err := s.getJSON(ctx, fmt.Sprintf("/tv/%d", tmdbID), url.Values{
		"append_to_response": {"videos,credits,external_ids"},
	}, &detail); err != nil {
		return err
	}

	show := &model.TVShow{
		TMDBID:           detail.ID,
		Name:             detail.Name,
		OriginalName:     detail.OriginalName,
		Overview:         detail.Overview,
		FirstAirDate:     parseTMDBDate(detail.FirstAirDate),
		LastAirDate:      parseTMDBDate(detail.LastAirDate),
		NumberOfSeasons:  detail.NumberOfSeasons,
		NumberOfEpisodes: detail.NumberOfEpisodes,
		Homepage:         detail.Homepage,
		Status:           detail.Status,
		OriginalLanguage: detail.OriginalLanguage,
		Popularity:       detail.Popularity,
		VoteAverage:      detail.VoteAverage,
		VoteCount:        detail.VoteCount,
		PosterPath:       detail.PosterPath,
		BackdropPath:     detail.BackdropPath,
		TrailerURL:       trailerURL(detail.Videos),
		IMDbID:           detail.ExternalIDs.IMDbID,
		FacebookID:       detail.ExternalIDs.FacebookID,
		InstagramID:      detail.ExternalIDs.InstagramID,
		TwitterID:        detail.ExternalIDs.TwitterID,
		Director:         director(detail.Credits),
		Cast:             topCast(detail.Credits),
	}
	if len(detail.EpisodeRunTime) > 0 {
		show.EpisodeRunTime = &detail.EpisodeRunTime[0]
	}

	genres, err := s.resolveGenres(detail.Genres)
	if err != nil {
		return err
	}
	return s.shows.Upsert(show, genres)
}

func (s *TMDBService) resolveGenres(raw []tmdbGenre) ([]model.Genre, error) {
	genres := make([]model.Genre, 0, len(raw))
	for _, g := range raw {
		genre, err := s.genres.FirstOrCreate(g.ID, g.Name)
		if err != nil {
			return nil, err
		}
		genres = append(genres, *genre)
	}
	return genres, nil
}

// getJSON performs a rate-limited authenticated GET against the TMDB API.
func (s *TMDBService) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	query.Set("api_key", s.cfg.TMDBAPIKey)
	return s.client.GetJSON(ctx, s.cfg.TMDBBaseURL+path+"?"+query.Encode(), target)
}

// trailerURL picks the first YouTube trailer out of the videos payload.
func trailerURL(videos tmdbVideos) string {
	for _, v := range videos.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return "https://www.youtube.com/watch?v=" + v.Key
		}
	}
	return ""
}

// director joins every crew member credited as Director.
func director(credits tmdbCredits) string {
	var names []string
	for _, c := range credits.Crew {
		if c.Job == "Director" {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, ", ")
}

// topCast keeps the first billed cast members.
func topCast(credits tmdbCredits) []string {
	names := make([]string, 0, maxCastMembers)
	for _, c := range credits.Cast {
		if len(names) == maxCastMembers {
			break
		}
		names = append(names, c.Name)
	}
	return names
}

func parseTMDBDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
