package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
)

func seedUser(t *testing.T, repos *repository.Repositories, username string) *model.User {
	t.Helper()
	user, err := repos.User.Create(username+"@example.com", username, "secret123")
	require.NoError(t, err)
	return user
}

func seedReview(t *testing.T, repos *repository.Repositories, userID int, target model.ReviewTarget, comment string) {
	t.Helper()
	review, err := model.NewReview(userID, target, 4, comment)
	require.NoError(t, err)
	require.NoError(t, repos.Review.Create(review))
}

func TestMovieTipNotFound(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{response: "ipucu"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	_, err := svc.MovieTip(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, gen.calls)
}

func TestMovieTipWithoutReviews(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{response: "ipucu"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	movie := seedMovie(t, repos, 1, "Inception", nil)

	tip, err := svc.MovieTip(context.Background(), movie.ID)
	require.NoError(t, err)
	assert.Equal(t, insufficientDataTip, tip)
	assert.Zero(t, gen.calls, "no AI call without reviews")
}

func TestMovieTipBlankCommentsIgnored(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{response: "ipucu"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	movie := seedMovie(t, repos, 1, "Inception", nil)
	user := seedUser(t, repos, "ayse")
	seedReview(t, repos, user.ID, model.MovieTarget(movie.ID), "   ")

	tip, err := svc.MovieTip(context.Background(), movie.ID)
	require.NoError(t, err)
	assert.Equal(t, insufficientDataTip, tip)
	assert.Zero(t, gen.calls)
}

func TestMovieTipBuildsPrompt(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{response: "  Harika bir başlangıç filmi.  "}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	movie := seedMovie(t, repos, 1, "Inception", nil)
	ayse := seedUser(t, repos, "ayse")
	mehmet := seedUser(t, repos, "mehmet")
	seedReview(t, repos, ayse.ID, model.MovieTarget(movie.ID), "kurgu çok iyi")
	seedReview(t, repos, mehmet.ID, model.MovieTarget(movie.ID), "müzikler harika")

	tip, err := svc.MovieTip(context.Background(), movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harika bir başlangıç filmi.", tip)

	require.Equal(t, 1, gen.calls)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, `"Inception"`)
	assert.Contains(t, prompt, "kurgu çok iyi")
	assert.Contains(t, prompt, "müzikler harika")
}

func TestMovieTipTruncatesReviewCorpus(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{response: "ipucu"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	movie := seedMovie(t, repos, 1, "Inception", nil)
	user := seedUser(t, repos, "ayse")
	seedReview(t, repos, user.ID, model.MovieTarget(movie.ID), strings.Repeat("a", 6000))

	_, err := svc.MovieTip(context.Background(), movie.ID)
	require.NoError(t, err)

	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0], strings.Repeat("a", 5000))
	assert.NotContains(t, gen.prompts[0], strings.Repeat("a", 5001))
}

func TestTVShowTipCommentFormat(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{response: "ipucu"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	show := seedShow(t, repos, 1, "Dark", nil)
	user := seedUser(t, repos, "ayse")
	seedReview(t, repos, user.ID, model.TVShowTarget(show.ID), "zaman yolculuğu çok iyi işlenmiş")

	_, err := svc.TVShowTip(context.Background(), show.ID)
	require.NoError(t, err)

	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0], "ayse: zaman yolculuğu çok iyi işlenmiş")
}

func TestTipGeneratorErrorPropagates(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{err: errors.New("upstream down")}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	movie := seedMovie(t, repos, 1, "Inception", nil)
	user := seedUser(t, repos, "ayse")
	seedReview(t, repos, user.ID, model.MovieTarget(movie.ID), "iyi film")

	_, err := svc.MovieTip(context.Background(), movie.ID)
	assert.EqualError(t, err, "upstream down")
}

func TestRecommendEmptyPreference(t *testing.T) {
	repos := newTestRepos(t)
	gen := &stubGenerator{response: "öneri"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	_, err := svc.Recommend(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPreference)
	assert.Zero(t, gen.calls, "no AI call on blank preference")
}

func TestRecommendRoundTrip(t *testing.T) {
	repos := newTestRepos(t)
	genres := seedGenres(t, repos, "Bilim Kurgu", "Gerilim")
	movie := seedMovie(t, repos, 1, "Inception", genres[:1])
	show := seedShow(t, repos, 2, "Dark", genres)

	raw := "- Inception: rüya temasını sevenler için\n" +
		"- Dark: zaman yolculuğu içeriyor\n" +
		"- Bilinmeyen Film: katalogda yok"
	gen := &stubGenerator{response: raw}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	result, err := svc.Recommend(context.Background(), "sci-fi with dreams")
	require.NoError(t, err)

	assert.Equal(t, raw, result.AISummary)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, RecommendedTitle{ID: movie.ID, Title: "Inception", Type: model.ContentTypeMovie}, result.Recommendations[0])
	assert.Equal(t, RecommendedTitle{ID: show.ID, Title: "Dark", Type: model.ContentTypeTVShow}, result.Recommendations[1])
	assert.Equal(t, 1, gen.calls)
}

func TestRecommendCaseFoldedMatch(t *testing.T) {
	repos := newTestRepos(t)
	movie := seedMovie(t, repos, 1, "The Matrix", nil)

	gen := &stubGenerator{response: "- the matrix: klasik"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	result, err := svc.Recommend(context.Background(), "classic sci-fi")
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	// Canonical catalog casing, not the AI's.
	assert.Equal(t, "The Matrix", result.Recommendations[0].Title)
	assert.Equal(t, movie.ID, result.Recommendations[0].ID)
}

func TestRecommendDeduplicates(t *testing.T) {
	repos := newTestRepos(t)
	seedMovie(t, repos, 1, "Inception", nil)

	gen := &stubGenerator{response: "- Inception: bir\n- Inception: iki"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	result, err := svc.Recommend(context.Background(), "dreams")
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 1)
}

func TestRecommendLanguageSelection(t *testing.T) {
	repos := newTestRepos(t)
	seedMovie(t, repos, 1, "Inception", nil)

	t.Run("turkish preference", func(t *testing.T) {
		gen := &stubGenerator{response: "Inception"}
		svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

		_, err := svc.Recommend(context.Background(), "bilim kurgu ve rüya temalı filmler severim")
		require.NoError(t, err)
		require.Equal(t, 1, gen.calls)
		assert.Contains(t, gen.prompts[0], "tercihe en çok uyan")
	})

	t.Run("english preference", func(t *testing.T) {
		gen := &stubGenerator{response: "Inception"}
		svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

		_, err := svc.Recommend(context.Background(), "I like dreamy sci-fi")
		require.NoError(t, err)
		require.Equal(t, 1, gen.calls)
		assert.Contains(t, gen.prompts[0], "Recommend at most 5 titles")
	})
}

func TestRecommendExcerptFormat(t *testing.T) {
	repos := newTestRepos(t)
	genres := seedGenres(t, repos, "Bilim Kurgu", "Aksiyon")

	movie := &model.Movie{TMDBID: 1, Title: "Inception", Overview: "Rüya içinde rüya."}
	require.NoError(t, repos.Movie.Upsert(movie, genres))

	gen := &stubGenerator{response: "Inception"}
	svc := NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)

	_, err := svc.Recommend(context.Background(), "dreams")
	require.NoError(t, err)

	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0],
		"Inception [movie]: Genres: Bilim Kurgu, Aksiyon. Summary: Rüya içinde rüya.")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abcde", 2))

	// Multi-byte runes are never split.
	truncated := truncateRunes(strings.Repeat("ş", 10), 3)
	assert.Equal(t, 3, utf8.RuneCountInString(truncated))
	assert.Equal(t, "şşş", truncated)
}
