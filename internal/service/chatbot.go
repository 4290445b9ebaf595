package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/aifilm/internal/ai"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
)

const chatbotSystemPrompt = "Sen bir film ve dizi asistanısın. Kullanıcılara katalogdaki " +
	"yapımlar hakkında Türkçe, kısa ve samimi yanıtlar verirsin. Bilgi bulunamadığında " +
	"bunu açıkça söylersin."

// ChatbotService answers free-form catalog questions through the chat
// completion API. The model may call the lookup functions; their results are
// fed back for a second completion that produces the final answer.
type ChatbotService struct {
	movies *repository.MovieRepository
	shows  *repository.TVShowRepository
	client *ai.OpenAIClient
}

func NewChatbotService(movies *repository.MovieRepository, shows *repository.TVShowRepository, client *ai.OpenAIClient) *ChatbotService {
	return &ChatbotService{movies: movies, shows: shows, client: client}
}

func chatbotFunctions() []ai.FunctionDef {
	titleParam := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Yapımın adı",
			},
		},
		"required": []string{"title"},
	}
	return []ai.FunctionDef{
		{
			Name:        "get_movie_info",
			Description: "Katalogdaki bir film hakkında bilgi getirir",
			Parameters:  titleParam,
		},
		{
			Name:        "get_tvshow_info",
			Description: "Katalogdaki bir dizi hakkında bilgi getirir",
			Parameters:  titleParam,
		},
	}
}

// Answer runs the function-calling loop for one user message.
func (s *ChatbotService) Answer(ctx context.Context, message string) (string, error) {
	messages := []ai.ChatMessage{
		{Role: "system", Content: chatbotSystemPrompt},
		{Role: "user", Content: message},
	}

	choice, err := s.client.Chat(ctx, messages, chatbotFunctions(), "auto")
	if err != nil {
		return "", err
	}

	if choice.Message.FunctionCall == nil {
		return strings.TrimSpace(choice.Message.Content), nil
	}

	call := choice.Message.FunctionCall
	var args struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return "", fmt.Errorf("chatbot: decode function arguments: %w", err)
	}

	info, err := s.lookup(call.Name, args.Title)
	if err != nil {
		return "", err
	}

	messages = append(messages,
		ai.ChatMessage{Role: "assistant", FunctionCall: call},
		ai.ChatMessage{Role: "function", Name: call.Name, Content: info},
	)

	final, err := s.client.Chat(ctx, messages, nil, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(final.Message.Content), nil
}

// lookup resolves a function call against the catalog. A title found among
// movies wins even when the show lookup was requested, since users routinely
// mislabel the two.
func (s *ChatbotService) lookup(function, title string) (string, error) {
	movie, err := s.movies.FindByTitleFold(title)
	if err != nil {
		return "", err
	}
	if movie != nil {
		return movieInfoJSON(movie)
	}

	show, err := s.shows.FindByNameFold(title)
	if err != nil {
		return "", err
	}
	if show != nil {
		return showInfoJSON(show)
	}

	if function == "get_tvshow_info" {
		return fmt.Sprintf("Maalesef veritabanımda %q dizisine dair bilgi bulunmamaktadır.", title), nil
	}
	return fmt.Sprintf("Maalesef veritabanımda %q filmine dair bilgi bulunmamaktadır.", title), nil
}

func movieInfoJSON(m *model.Movie) (string, error) {
	payload := map[string]any{
		"title":        m.Title,
		"overview":     m.Overview,
		"genres":       m.GenreNames(),
		"director":     m.Director,
		"cast":         m.Cast,
		"vote_average": m.VoteAverage,
		"popularity":   m.Popularity,
	}
	if m.ReleaseDate != nil {
		payload["release_date"] = m.ReleaseDate.Format("2006-01-02")
	}
	if m.Runtime != nil {
		payload["runtime"] = *m.Runtime
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func showInfoJSON(t *model.TVShow) (string, error) {
	payload := map[string]any{
		"name":               t.Name,
		"overview":           t.Overview,
		"genres":             t.GenreNames(),
		"cast":               t.Cast,
		"number_of_seasons":  t.NumberOfSeasons,
		"number_of_episodes": t.NumberOfEpisodes,
		"vote_average":       t.VoteAverage,
		"popularity":         t.Popularity,
	}
	if t.FirstAirDate != nil {
		payload["first_air_date"] = t.FirstAirDate.Format("2006-01-02")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
