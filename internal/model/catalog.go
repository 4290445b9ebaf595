package model

import (
	"time"
)

// ContentType distinguishes the two catalog title kinds on the wire and in
// review/history/watchlist targets.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeTVShow ContentType = "tvshow"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeTVShow
}

// Genre is mirrored from TMDB and shared by movies and shows.
// Identity is the TMDB id; the surrogate key exists for the join tables.
type Genre struct {
	ID     int    `json:"id" db:"id"`
	TMDBID int    `json:"tmdb_id" db:"tmdb_id" gorm:"uniqueIndex"`
	Name   string `json:"name" db:"name"`
}

// Movie is a catalog row mirrored from TMDB. Director and Cast are resolved
// once at ingestion time from the credits payload; read paths never touch raw
// credits JSON.
type Movie struct {
	ID               int        `json:"id" db:"id"`
	TMDBID           int        `json:"tmdb_id" db:"tmdb_id" gorm:"uniqueIndex"`
	Title            string     `json:"title" db:"title"`
	OriginalTitle    string     `json:"original_title" db:"original_title"`
	Overview         string     `json:"overview" db:"overview"`
	Tagline          string     `json:"tagline" db:"tagline"`
	ReleaseDate      *time.Time `json:"release_date" db:"release_date"`
	Runtime          *int       `json:"runtime" db:"runtime"`
	Homepage         string     `json:"homepage" db:"homepage"`
	Status           string     `json:"status" db:"status"`
	OriginalLanguage string     `json:"original_language" db:"original_language"`
	Budget           int64      `json:"budget" db:"budget"`
	Revenue          int64      `json:"revenue" db:"revenue"`
	Popularity       float64    `json:"popularity" db:"popularity" gorm:"index"`
	VoteAverage      float64    `json:"vote_average" db:"vote_average"`
	VoteCount        int        `json:"vote_count" db:"vote_count"`
	PosterPath       string     `json:"poster_path" db:"poster_path"`
	BackdropPath     string     `json:"backdrop_path" db:"backdrop_path"`
	TrailerURL       string     `json:"trailer_url" db:"trailer_url"`
	IMDbID           string     `json:"imdb_id" db:"imdb_id"`
	FacebookID       string     `json:"facebook_id" db:"facebook_id"`
	InstagramID      string     `json:"instagram_id" db:"instagram_id"`
	TwitterID        string     `json:"twitter_id" db:"twitter_id"`
	Director         string     `json:"director" db:"director"`
	Cast             []string   `json:"cast" db:"cast" gorm:"serializer:json"`
	Genres           []Genre    `json:"genres,omitempty" gorm:"many2many:movie_genres"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at" gorm:"index"`
}

// GenreNames returns the genre names in association order.
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// TVShow is a catalog row mirrored from TMDB.
type TVShow struct {
	ID               int        `json:"id" db:"id"`
	TMDBID           int        `json:"tmdb_id" db:"tmdb_id" gorm:"uniqueIndex"`
	Name             string     `json:"name" db:"name"`
	OriginalName     string     `json:"original_name" db:"original_name"`
	Overview         string     `json:"overview" db:"overview"`
	FirstAirDate     *time.Time `json:"first_air_date" db:"first_air_date"`
	LastAirDate      *time.Time `json:"last_air_date" db:"last_air_date"`
	EpisodeRunTime   *int       `json:"episode_run_time" db:"episode_run_time"`
	NumberOfSeasons  int        `json:"number_of_seasons" db:"number_of_seasons"`
	NumberOfEpisodes int        `json:"number_of_episodes" db:"number_of_episodes"`
	Homepage         string     `json:"homepage" db:"homepage"`
	Status           string     `json:"status" db:"status"`
	OriginalLanguage string     `json:"original_language" db:"original_language"`
	Popularity       float64    `json:"popularity" db:"popularity" gorm:"index"`
	VoteAverage      float64    `json:"vote_average" db:"vote_average"`
	VoteCount        int        `json:"vote_count" db:"vote_count"`
	PosterPath       string     `json:"poster_path" db:"poster_path"`
	BackdropPath     string     `json:"backdrop_path" db:"backdrop_path"`
	TrailerURL       string     `json:"trailer_url" db:"trailer_url"`
	IMDbID           string     `json:"imdb_id" db:"imdb_id"`
	FacebookID       string     `json:"facebook_id" db:"facebook_id"`
	InstagramID      string     `json:"instagram_id" db:"instagram_id"`
	TwitterID        string     `json:"twitter_id" db:"twitter_id"`
	Director         string     `json:"director" db:"director"`
	Cast             []string   `json:"cast" db:"cast" gorm:"serializer:json"`
	Genres           []Genre    `json:"genres,omitempty" gorm:"many2many:tvshow_genres"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at" gorm:"index"`
}

// GenreNames returns the genre names in association order.
func (s *TVShow) GenreNames() []string {
	names := make([]string, 0, len(s.Genres))
	for _, g := range s.Genres {
		names = append(names, g.Name)
	}
	return names
}
