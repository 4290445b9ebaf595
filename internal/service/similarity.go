package service

import (
	"errors"

	"github.com/samber/lo"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
)

// ErrNotFound is returned when the requested title does not exist.
var ErrNotFound = errors.New("title not found")

// similarLimit caps the embedded similar list.
const similarLimit = 5

// SimilarityService ranks same-type titles by genre overlap. Primary sort key
// is the shared-genre count, popularity breaks ties; ordering among exact
// ties is left to the storage engine.
type SimilarityService struct {
	movies *repository.MovieRepository
	shows  *repository.TVShowRepository
}

// NewSimilarityService builds the service on the catalog repositories.
func NewSimilarityService(movies *repository.MovieRepository, shows *repository.TVShowRepository) *SimilarityService {
	return &SimilarityService{movies: movies, shows: shows}
}

// SimilarMovies returns up to 5 movies sharing at least one genre with the
// source movie. An empty result is not an error.
func (s *SimilarityService) SimilarMovies(id int) ([]model.Movie, error) {
	source, err := s.movies.FindByID(id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNotFound
	}

	genreIDs := lo.Map(source.Genres, func(g model.Genre, _ int) int { return g.ID })
	return s.movies.FindSimilar(source.ID, genreIDs, similarLimit)
}

// SimilarTVShows returns up to 5 shows sharing at least one genre with the
// source show.
func (s *SimilarityService) SimilarTVShows(id int) ([]model.TVShow, error) {
	source, err := s.shows.FindByID(id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNotFound
	}

	genreIDs := lo.Map(source.Genres, func(g model.Genre, _ int) int { return g.ID })
	return s.shows.FindSimilar(source.ID, genreIDs, similarLimit)
}
