package model

import (
	"time"
)

// WatchHistory records that a user watched one title for some minutes.
// Exactly one of MovieID/TVShowID is set, same rule as Review.
type WatchHistory struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id" gorm:"index"`
	MovieID         *int      `json:"movie_id,omitempty" db:"movie_id"`
	TVShowID        *int      `json:"tvshow_id,omitempty" db:"tv_show_id"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	WatchedAt       time.Time `json:"watched_at" db:"watched_at" gorm:"index"`
	Movie           *Movie    `json:"movie,omitempty"`
	TVShow          *TVShow   `json:"tvshow,omitempty"`
}

// WatchlistItem marks one title a user saved for later.
type WatchlistItem struct {
	ID       int       `json:"id" db:"id"`
	UserID   int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:uniq_user_movie_wl;uniqueIndex:uniq_user_tvshow_wl"`
	MovieID  *int      `json:"movie_id,omitempty" db:"movie_id" gorm:"uniqueIndex:uniq_user_movie_wl"`
	TVShowID *int      `json:"tvshow_id,omitempty" db:"tv_show_id" gorm:"uniqueIndex:uniq_user_tvshow_wl"`
	AddedAt  time.Time `json:"added_at" db:"added_at"`
	Movie    *Movie    `json:"movie,omitempty"`
	TVShow   *TVShow   `json:"tvshow,omitempty"`
}

// Like is a per-user movie like toggle.
type Like struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:uniq_user_movie_like"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:uniq_user_movie_like"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
