package repository

import (
	"errors"
	"time"

	"github.com/user/aifilm/internal/model"
	"gorm.io/gorm"
)

type TVShowRepository struct {
	db *gorm.DB
}

func NewTVShowRepository(db *gorm.DB) *TVShowRepository {
	return &TVShowRepository{db: db}
}

// FindByID loads a show with its genres. Returns (nil, nil) when absent.
func (r *TVShowRepository) FindByID(id int) (*model.TVShow, error) {
	var show model.TVShow
	err := r.db.Preload("Genres").First(&show, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// FindByTMDBID looks a show up by its external catalog id.
func (r *TVShowRepository) FindByTMDBID(tmdbID int) (*model.TVShow, error) {
	var show model.TVShow
	err := r.db.Where("tmdb_id = ?", tmdbID).First(&show).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// FindByNameFold matches a show name case-insensitively (exact, case-folded
// equality). Returns (nil, nil) when absent.
func (r *TVShowRepository) FindByNameFold(name string) (*model.TVShow, error) {
	var show model.TVShow
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&show).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// Upsert creates or updates a show keyed on tmdb_id and replaces its genre
// set.
func (r *TVShowRepository) Upsert(show *model.TVShow, genres []model.Genre) error {
	show.UpdatedAt = time.Now()
	existing, err := r.FindByTMDBID(show.TMDBID)
	if err != nil {
		return err
	}
	if existing != nil {
		show.ID = existing.ID
	}
	if err := r.db.Omit("Genres").Save(show).Error; err != nil {
		return err
	}
	return r.db.Model(show).Association("Genres").Replace(genres)
}

// List returns one page of shows, most popular first.
func (r *TVShowRepository) List(limit, offset int) ([]model.TVShow, error) {
	var shows []model.TVShow
	err := r.db.Order("popularity DESC").
		Limit(limit).
		Offset(offset).
		Find(&shows).Error
	return shows, err
}

// Count returns the total number of shows.
func (r *TVShowRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.TVShow{}).Count(&count).Error
	return count, err
}

// Trending returns the most popular shows.
func (r *TVShowRepository) Trending(limit int) ([]model.TVShow, error) {
	var shows []model.TVShow
	err := r.db.Order("popularity DESC").Limit(limit).Find(&shows).Error
	return shows, err
}

// SearchByTitle matches show names by case-insensitive substring.
func (r *TVShowRepository) SearchByTitle(q string, limit int) ([]model.TVShow, error) {
	var shows []model.TVShow
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+q+"%").
		Order("popularity DESC").
		Limit(limit).
		Find(&shows).Error
	return shows, err
}

// ListForExcerpt returns catalog rows with genres for the recommendation
// prompt, in primary-key order.
func (r *TVShowRepository) ListForExcerpt(limit int) ([]model.TVShow, error) {
	var shows []model.TVShow
	err := r.db.Preload("Genres").Order("id").Limit(limit).Find(&shows).Error
	return shows, err
}

// FindSimilar ranks shows sharing at least one genre with the given genre
// set, by shared-genre count then popularity, both descending.
func (r *TVShowRepository) FindSimilar(showID int, genreIDs []int, limit int) ([]model.TVShow, error) {
	if len(genreIDs) == 0 {
		return nil, nil
	}
	var shows []model.TVShow
	err := r.db.Model(&model.TVShow{}).
		Select("tv_shows.*, COUNT(tvshow_genres.genre_id) AS shared_genres").
		Joins("JOIN tvshow_genres ON tvshow_genres.tv_show_id = tv_shows.id").
		Where("tvshow_genres.genre_id IN ? AND tv_shows.id <> ?", genreIDs, showID).
		Group("tv_shows.id").
		Order("shared_genres DESC, tv_shows.popularity DESC").
		Limit(limit).
		Find(&shows).Error
	return shows, err
}

// Delete removes a show and its genre links.
func (r *TVShowRepository) Delete(id int) error {
	show := model.TVShow{ID: id}
	if err := r.db.Model(&show).Association("Genres").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&show).Error
}
