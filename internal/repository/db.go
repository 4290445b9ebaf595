package repository

import (
	"fmt"

	"github.com/user/aifilm/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the postgres connection, configures the pool and migrates the
// schema.
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates all tables. Exported so tests can run the same
// schema on sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.Movie{},
		&model.TVShow{},
		&model.Review{},
		&model.Like{},
		&model.WatchHistory{},
		&model.WatchlistItem{},
	)
}

// Repositories bundles every repository behind one handle.
type Repositories struct {
	DB        *gorm.DB
	User      *UserRepository
	Movie     *MovieRepository
	TVShow    *TVShowRepository
	Genre     *GenreRepository
	Review    *ReviewRepository
	Like      *LikeRepository
	History   *HistoryRepository
	Watchlist *WatchlistRepository
}

// NewRepositories wires all repositories to one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:        db,
		User:      NewUserRepository(db),
		Movie:     NewMovieRepository(db),
		TVShow:    NewTVShowRepository(db),
		Genre:     NewGenreRepository(db),
		Review:    NewReviewRepository(db),
		Like:      NewLikeRepository(db),
		History:   NewHistoryRepository(db),
		Watchlist: NewWatchlistRepository(db),
	}
}
