package handler_test

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/aifilm/internal/ai"
	"github.com/user/aifilm/internal/config"
	"github.com/user/aifilm/internal/handler"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
	"github.com/user/aifilm/internal/router"
	"github.com/user/aifilm/internal/service"
	"github.com/user/aifilm/internal/utils"
)

// stubGenerator returns a fixed response and counts calls.
type stubGenerator struct {
	calls    int
	response string
}

func (s *stubGenerator) GenerateText(context.Context, string) (string, error) {
	s.calls++
	return s.response, nil
}

type testEnv struct {
	engine *gin.Engine
	repos  *repository.Repositories
	gen    *stubGenerator
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gob.Register(model.SessionUser{})
	utils.InitCache()
	handler.RegisterValidators()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	cfg := &config.Config{
		Env:         "test",
		AppSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		CORSOrigins: []string{"http://localhost:5173"},
	}

	repos := repository.NewRepositories(db)
	gen := &stubGenerator{response: "stub yanıtı"}

	similarity := service.NewSimilarityService(repos.Movie, repos.TVShow)
	tips := service.NewTipService(repos.Movie, repos.TVShow, repos.Review, gen)
	chatbot := service.NewChatbotService(repos.Movie, repos.TVShow,
		ai.NewOpenAIClient("", "gpt-3.5-turbo", ""))
	tmdb := service.NewTMDBService(cfg, repos)

	h := handler.NewHandler(cfg, repos, similarity, tips, chatbot, tmdb)
	return &testEnv{
		engine: router.Setup(cfg, h),
		repos:  repos,
		gen:    gen,
		cfg:    cfg,
	}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) registerUser(t *testing.T, username string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":    username + "@example.com",
		"username": username,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	return e.login(t, username)
}

func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": username,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Access)
	return resp.Access
}

func (e *testEnv) seedMovie(t *testing.T, tmdbID int, title string) *model.Movie {
	t.Helper()
	movie := &model.Movie{TMDBID: tmdbID, Title: title}
	require.NoError(t, e.repos.Movie.Upsert(movie, nil))
	return movie
}

func requireJSON(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
