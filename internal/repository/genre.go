package repository

import (
	"github.com/user/aifilm/internal/model"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// ListAll returns every genre ordered by name.
func (r *GenreRepository) ListAll() ([]model.Genre, error) {
	var genres []model.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// FirstOrCreate resolves a genre by its TMDB id, creating it with the given
// name on first sight. The ingestion job calls this for every title.
func (r *GenreRepository) FirstOrCreate(tmdbID int, name string) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.Where(model.Genre{TMDBID: tmdbID}).
		Attrs(model.Genre{Name: name}).
		FirstOrCreate(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}
