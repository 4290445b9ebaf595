package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/aifilm/internal/model"
)

func TestCreateReviewRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")

	w := env.request(t, http.MethodPost, "/api/movies/"+itoa(movie.ID)+"/reviews", gin.H{
		"rating": 4,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListMovieReviews(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")
	token := env.registerUser(t, "ayse")

	w := env.request(t, http.MethodPost, "/api/movies/"+itoa(movie.ID)+"/reviews", gin.H{
		"rating":  4,
		"comment": "kurgu müthiş",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/movies/"+itoa(movie.ID)+"/reviews", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var reviews []map[string]any
	requireJSON(t, w, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, "kurgu müthiş", reviews[0]["comment"])
	assert.EqualValues(t, 4, reviews[0]["rating"])

	user := reviews[0]["user"].(map[string]any)
	assert.Equal(t, "ayse", user["username"])
	assert.NotContains(t, user, "password_hash")
}

func TestCreateReviewMissingMovie(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "ayse")

	w := env.request(t, http.MethodPost, "/api/movies/999/reviews", gin.H{
		"rating": 4,
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReviewDuplicate(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")
	token := env.registerUser(t, "ayse")

	path := "/api/movies/" + itoa(movie.ID) + "/reviews"
	w := env.request(t, http.MethodPost, path, gin.H{"rating": 4}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, path, gin.H{"rating": 3}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Bu yapım için zaten bir yorumunuz var.", decodeBody(t, w)["detail"])
}

func TestCreateReviewDefaultRating(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")
	token := env.registerUser(t, "ayse")

	w := env.request(t, http.MethodPost, "/api/movies/"+itoa(movie.ID)+"/reviews", gin.H{
		"comment": "puansız yorum",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 5, decodeBody(t, w)["rating"])
}

func TestDeleteReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")
	owner := env.registerUser(t, "ayse")
	intruder := env.registerUser(t, "mehmet")

	w := env.request(t, http.MethodPost, "/api/movies/"+itoa(movie.ID)+"/reviews", gin.H{
		"rating": 4,
	}, owner)
	require.Equal(t, http.StatusCreated, w.Code)
	reviewID := int(decodeBody(t, w)["id"].(float64))

	w = env.request(t, http.MethodDelete, "/api/reviews/"+itoa(reviewID), nil, intruder)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodDelete, "/api/reviews/"+itoa(reviewID), nil, owner)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestToggleMovieLike(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")
	token := env.registerUser(t, "ayse")

	path := "/api/movies/" + itoa(movie.ID) + "/like"
	w := env.request(t, http.MethodPost, path, nil, token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Beğeni eklendi.", decodeBody(t, w)["detail"])

	w = env.request(t, http.MethodGet, path+"_count", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["like_count"])

	w = env.request(t, http.MethodPost, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Beğeni kaldırıldı.", decodeBody(t, w)["detail"])
}

func TestCreateReviewByBody(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")
	show := &model.TVShow{TMDBID: 2, Name: "Dark"}
	require.NoError(t, env.repos.TVShow.Upsert(show, nil))
	token := env.registerUser(t, "ayse")

	w := env.request(t, http.MethodPost, "/api/reviews", gin.H{
		"content_type": "movie",
		"content_id":   movie.ID,
		"rating":       4,
		"comment":      "tekrar izlenir",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/reviews", gin.H{
		"content_type": "tvshow",
		"content_id":   show.ID,
		"rating":       5,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/movies/"+itoa(movie.ID)+"/reviews", nil, "")
	var reviews []map[string]any
	requireJSON(t, w, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, "tekrar izlenir", reviews[0]["comment"])
}

func TestCreateReviewByBodyMissingShow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "ayse")

	w := env.request(t, http.MethodPost, "/api/reviews", gin.H{
		"content_type": "tvshow",
		"content_id":   999,
		"rating":       3,
	}, token)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Dizi bulunamadı.", decodeBody(t, w)["detail"])
}

func TestCreateReviewByBodyInvalidContentType(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "ayse")

	w := env.request(t, http.MethodPost, "/api/reviews", gin.H{
		"content_type": "podcast",
		"content_id":   1,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentCount(t *testing.T) {
	env := newTestEnv(t)
	movie := env.seedMovie(t, 1, "Inception")
	token := env.registerUser(t, "ayse")

	w := env.request(t, http.MethodGet, "/api/movies/"+itoa(movie.ID)+"/comment_count", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["comment_count"])

	env.request(t, http.MethodPost, "/api/movies/"+itoa(movie.ID)+"/reviews", gin.H{"rating": 3}, token)

	w = env.request(t, http.MethodGet, "/api/movies/"+itoa(movie.ID)+"/comment_count", nil, "")
	assert.EqualValues(t, 1, decodeBody(t, w)["comment_count"])
}
