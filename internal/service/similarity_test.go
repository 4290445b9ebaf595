package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarMovies(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSimilarityService(repos.Movie, repos.TVShow)
	genres := seedGenres(t, repos, "Bilim Kurgu", "Aksiyon", "Dram")

	source := seedMovie(t, repos, 1, "Kaynak", genres[:2])
	twoShared := seedMovie(t, repos, 2, "İki Tür", genres[:2])
	oneShared := seedMovie(t, repos, 3, "Tek Tür", genres[1:2])
	seedMovie(t, repos, 4, "Alakasız", genres[2:])

	similar, err := svc.SimilarMovies(source.ID)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	assert.Equal(t, twoShared.ID, similar[0].ID)
	assert.Equal(t, oneShared.ID, similar[1].ID)
}

func TestSimilarMoviesCapped(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSimilarityService(repos.Movie, repos.TVShow)
	genres := seedGenres(t, repos, "Bilim Kurgu")

	source := seedMovie(t, repos, 1, "Kaynak", genres)
	for i := 2; i <= 10; i++ {
		seedMovie(t, repos, i, "Film", genres)
	}

	similar, err := svc.SimilarMovies(source.ID)
	require.NoError(t, err)
	assert.Len(t, similar, 5)
}

func TestSimilarMoviesNoGenres(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSimilarityService(repos.Movie, repos.TVShow)

	source := seedMovie(t, repos, 1, "Türsüz", nil)
	similar, err := svc.SimilarMovies(source.ID)
	require.NoError(t, err)
	assert.Empty(t, similar)
}

func TestSimilarMoviesNotFound(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSimilarityService(repos.Movie, repos.TVShow)

	_, err := svc.SimilarMovies(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimilarTVShows(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSimilarityService(repos.Movie, repos.TVShow)
	genres := seedGenres(t, repos, "Gerilim", "Dram")

	source := seedShow(t, repos, 1, "Kaynak Dizi", genres)
	match := seedShow(t, repos, 2, "Benzer Dizi", genres[:1])
	seedMovie(t, repos, 3, "Film Karışmaz", genres)

	similar, err := svc.SimilarTVShows(source.ID)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, match.ID, similar[0].ID)
}
