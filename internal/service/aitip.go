package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/aifilm/internal/ai"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
	"github.com/user/aifilm/internal/utils"
)

// ErrEmptyPreference is returned when the preference string is blank.
var ErrEmptyPreference = errors.New("preference must not be blank")

const (
	// maxReviewChars caps the concatenated review text fed to the model.
	maxReviewChars = 5000

	// excerptLimit caps how many catalog items the recommendation prompt
	// carries. Items are taken in storage order, movies first.
	excerptLimit = 200

	// insufficientDataTip is returned without any AI call when a title has
	// no usable reviews.
	insufficientDataTip = "Bu başlık için henüz yeterli kullanıcı yorumu bulunmuyor."

	movieTipPrompt = "Aşağıda %q filmi için kullanıcı yorumları yer alıyor. " +
		"Bu yorumlara dayanarak filme dair kısa ve doğal bir izleyici ipucu yaz:\n\n%s"

	showTipPrompt = "Aşağıda %q dizisi için kullanıcı yorumları yer alıyor. " +
		"Bu yorumlara dayanarak diziye dair kısa ve doğal bir izleyici ipucu yaz:\n\n%s"

	recommendPromptTR = "Bir kullanıcı film/dizi tercihini şöyle anlattı: %q\n\n" +
		"Aşağıdaki katalogdan bu tercihe en çok uyan en fazla 5 yapımı öner. " +
		"Her satıra bir yapım yaz; başlığı yazdıktan sonra iki nokta koyup kısa bir gerekçe ekle.\n\n%s"

	recommendPromptEN = "A user described their movie/series taste as: %q\n\n" +
		"Recommend at most 5 titles from the catalog below that best match this taste. " +
		"Write one title per line, followed by a colon and a short reason.\n\n%s"
)

// turkishDiacritics marks a preference written in the deployment locale.
const turkishDiacritics = "çÇğĞıİöÖşŞüÜ"

// RecommendedTitle is one catalog row matched back from the AI answer.
type RecommendedTitle struct {
	ID    int               `json:"id"`
	Title string            `json:"title"`
	Type  model.ContentType `json:"type"`
}

// RecommendationResult carries the raw AI text alongside the matched rows.
type RecommendationResult struct {
	AISummary       string             `json:"ai_summary"`
	Recommendations []RecommendedTitle `json:"recommendations"`
}

// TipService aggregates review text for a title and forwards it to the
// generative service, and runs the personalized recommendation flow. The
// generator is injected; one request maps to at most one AI call and failures
// surface to the caller untouched.
type TipService struct {
	movies  *repository.MovieRepository
	shows   *repository.TVShowRepository
	reviews *repository.ReviewRepository
	gen     ai.TextGenerator
}

// NewTipService wires the adapter to the stores and the generator.
func NewTipService(movies *repository.MovieRepository, shows *repository.TVShowRepository, reviews *repository.ReviewRepository, gen ai.TextGenerator) *TipService {
	return &TipService{movies: movies, shows: shows, reviews: reviews, gen: gen}
}

// MovieTip summarizes the reviews of one movie. With zero usable reviews the
// canned fallback is returned and the generative service is not called.
func (s *TipService) MovieTip(ctx context.Context, id int) (string, error) {
	movie, err := s.movies.FindByID(id)
	if err != nil {
		return "", err
	}
	if movie == nil {
		return "", ErrNotFound
	}

	reviews, err := s.reviews.ListByTarget(model.MovieTarget(id))
	if err != nil {
		return "", err
	}

	comments := usableComments(reviews, func(r model.Review) string {
		return r.Comment
	})
	if len(comments) == 0 {
		return insufficientDataTip, nil
	}

	corpus := truncateRunes(strings.Join(comments, " "), maxReviewChars)
	resp, err := s.gen.GenerateText(ctx, fmt.Sprintf(movieTipPrompt, movie.Title, corpus))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// TVShowTip summarizes the reviews of one show. Comment lines keep their
// author: "username: comment", one per line.
func (s *TipService) TVShowTip(ctx context.Context, id int) (string, error) {
	show, err := s.shows.FindByID(id)
	if err != nil {
		return "", err
	}
	if show == nil {
		return "", ErrNotFound
	}

	reviews, err := s.reviews.ListByTarget(model.TVShowTarget(id))
	if err != nil {
		return "", err
	}

	comments := usableComments(reviews, func(r model.Review) string {
		username := "anonim"
		if r.User != nil {
			username = r.User.Username
		}
		return username + ": " + strings.TrimSpace(r.Comment)
	})
	if len(comments) == 0 {
		return insufficientDataTip, nil
	}

	corpus := truncateRunes(strings.Join(comments, "\n"), maxReviewChars)
	resp, err := s.gen.GenerateText(ctx, fmt.Sprintf(showTipPrompt, show.Name, corpus))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// Recommend asks the generative service to pick titles from a catalog
// excerpt matching the free-text preference, then re-matches the prose
// answer back to catalog rows. Unmatched titles are silently dropped.
func (s *TipService) Recommend(ctx context.Context, preference string) (*RecommendationResult, error) {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return nil, ErrEmptyPreference
	}

	excerpt, err := s.buildCatalogExcerpt()
	if err != nil {
		return nil, err
	}

	template := recommendPromptEN
	if strings.ContainsAny(preference, turkishDiacritics) {
		template = recommendPromptTR
	}

	raw, err := s.gen.GenerateText(ctx, fmt.Sprintf(template, preference, excerpt))
	if err != nil {
		return nil, err
	}

	result := &RecommendationResult{
		AISummary:       raw,
		Recommendations: []RecommendedTitle{},
	}

	seen := make(map[string]bool)
	for _, title := range utils.ParseSuggestedTitles(raw) {
		rec, err := s.matchTitle(title)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		key := fmt.Sprintf("%s/%d", rec.Type, rec.ID)
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Recommendations = append(result.Recommendations, *rec)
	}

	return result, nil
}

// matchTitle resolves one parsed title case-insensitively, movies first.
func (s *TipService) matchTitle(title string) (*RecommendedTitle, error) {
	movie, err := s.movies.FindByTitleFold(title)
	if err != nil {
		return nil, err
	}
	if movie != nil {
		return &RecommendedTitle{ID: movie.ID, Title: movie.Title, Type: model.ContentTypeMovie}, nil
	}

	show, err := s.shows.FindByNameFold(title)
	if err != nil {
		return nil, err
	}
	if show != nil {
		return &RecommendedTitle{ID: show.ID, Title: show.Name, Type: model.ContentTypeTVShow}, nil
	}
	return nil, nil
}

// buildCatalogExcerpt renders up to excerptLimit catalog items, one line
// each, movies then shows.
func (s *TipService) buildCatalogExcerpt() (string, error) {
	movies, err := s.movies.ListForExcerpt(excerptLimit)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, excerptLimit)
	for _, m := range movies {
		lines = append(lines, excerptLine(m.Title, model.ContentTypeMovie, m.GenreNames(), m.Overview))
	}

	if remaining := excerptLimit - len(lines); remaining > 0 {
		shows, err := s.shows.ListForExcerpt(remaining)
		if err != nil {
			return "", err
		}
		for _, t := range shows {
			lines = append(lines, excerptLine(t.Name, model.ContentTypeTVShow, t.GenreNames(), t.Overview))
		}
	}

	return strings.Join(lines, "\n"), nil
}

func excerptLine(title string, typ model.ContentType, genres []string, overview string) string {
	return fmt.Sprintf("%s [%s]: Genres: %s. Summary: %s",
		title, typ, strings.Join(genres, ", "), overview)
}

// usableComments maps reviews to comment lines, dropping blanks. Review
// order (newest first) is preserved.
func usableComments(reviews []model.Review, render func(model.Review) string) []string {
	var comments []string
	for _, r := range reviews {
		if strings.TrimSpace(r.Comment) == "" {
			continue
		}
		comments = append(comments, render(r))
	}
	return comments
}

// truncateRunes caps s at n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
