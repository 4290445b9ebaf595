package repository

import (
	"errors"
	"time"

	"github.com/user/aifilm/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindByID loads a movie with its genres. Returns (nil, nil) when absent.
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Preload("Genres").First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByTMDBID looks a movie up by its external catalog id.
func (r *MovieRepository) FindByTMDBID(tmdbID int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("tmdb_id = ?", tmdbID).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// FindByTitleFold matches a title case-insensitively (exact, case-folded
// equality). Returns (nil, nil) when absent.
func (r *MovieRepository) FindByTitleFold(title string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Where("LOWER(title) = LOWER(?)", title).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// Upsert creates or updates a movie keyed on tmdb_id and replaces its genre
// set. Idempotent so the ingestion job can re-run freely.
func (r *MovieRepository) Upsert(movie *model.Movie, genres []model.Genre) error {
	movie.UpdatedAt = time.Now()
	existing, err := r.FindByTMDBID(movie.TMDBID)
	if err != nil {
		return err
	}
	if existing != nil {
		movie.ID = existing.ID
	}
	if err := r.db.Omit("Genres").Save(movie).Error; err != nil {
		return err
	}
	return r.db.Model(movie).Association("Genres").Replace(genres)
}

// List returns one page of movies, most popular first.
func (r *MovieRepository) List(limit, offset int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Order("popularity DESC").
		Limit(limit).
		Offset(offset).
		Find(&movies).Error
	return movies, err
}

// Count returns the total number of movies.
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// Trending returns the most popular movies.
func (r *MovieRepository) Trending(limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Order("popularity DESC").Limit(limit).Find(&movies).Error
	return movies, err
}

// SearchByTitle matches titles by case-insensitive substring.
func (r *MovieRepository) SearchByTitle(q string, limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Where("LOWER(title) LIKE LOWER(?)", "%"+q+"%").
		Order("popularity DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// ListForExcerpt returns catalog rows with genres for the recommendation
// prompt, in primary-key order.
func (r *MovieRepository) ListForExcerpt(limit int) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.Preload("Genres").Order("id").Limit(limit).Find(&movies).Error
	return movies, err
}

// FindSimilar ranks movies sharing at least one genre with the given genre
// set, by shared-genre count then popularity, both descending.
func (r *MovieRepository) FindSimilar(movieID int, genreIDs []int, limit int) ([]model.Movie, error) {
	if len(genreIDs) == 0 {
		return nil, nil
	}
	var movies []model.Movie
	err := r.db.Model(&model.Movie{}).
		Select("movies.*, COUNT(movie_genres.genre_id) AS shared_genres").
		Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
		Where("movie_genres.genre_id IN ? AND movies.id <> ?", genreIDs, movieID).
		Group("movies.id").
		Order("shared_genres DESC, movies.popularity DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// Delete removes a movie. Genre links are cleared first so the join table
// does not keep dangling rows.
func (r *MovieRepository) Delete(id int) error {
	movie := model.Movie{ID: id}
	if err := r.db.Model(&movie).Association("Genres").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&movie).Error
}
