package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
)

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))
	return repository.NewRepositories(db)
}

func seedGenres(t *testing.T, repos *repository.Repositories, names ...string) []model.Genre {
	t.Helper()
	genres := make([]model.Genre, 0, len(names))
	for i, name := range names {
		g, err := repos.Genre.FirstOrCreate(1000+i, name)
		require.NoError(t, err)
		genres = append(genres, *g)
	}
	return genres
}

func seedMovie(t *testing.T, repos *repository.Repositories, tmdbID int, title string, genres []model.Genre) *model.Movie {
	t.Helper()
	movie := &model.Movie{TMDBID: tmdbID, Title: title}
	require.NoError(t, repos.Movie.Upsert(movie, genres))
	return movie
}

func seedShow(t *testing.T, repos *repository.Repositories, tmdbID int, name string, genres []model.Genre) *model.TVShow {
	t.Helper()
	show := &model.TVShow{TMDBID: tmdbID, Name: name}
	require.NoError(t, repos.TVShow.Upsert(show, genres))
	return show
}

// stubGenerator records prompts and returns a fixed response.
type stubGenerator struct {
	calls    int
	prompts  []string
	response string
	err      error
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}
