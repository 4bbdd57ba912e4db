// Package vision extracts bibliographic guesses from book cover images
// using Google Gemini.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shelfsort/bookident/internal/isbn"
	"github.com/shelfsort/bookident/internal/models"
	"google.golang.org/api/option"
)

// ErrNotConfigured is returned when no Gemini API key was supplied
var ErrNotConfigured = errors.New("gemini API key not configured")

const defaultModel = "gemini-2.0-flash"

// The extraction contract: a fixed five-key JSON object and nothing else.
const extractionPrompt = `Analyze the book cover in the image and return ONLY a valid JSON object with this structure:
{
  "isbn": "text or \"\"",
  "titulo": "text or \"\"",
  "autor": "text or \"\"",
  "anio": number (0 if unknown),
  "editorial": "text or \"\""
}
No additional text.`

// Gemini extracts book metadata from cover images
type Gemini struct {
	apiKey string
	model  string
}

// New returns a Gemini extractor. The API key is resolved once at process
// start and passed in here; an empty key makes every Extract call fail
// with ErrNotConfigured.
func New(apiKey, model string) *Gemini {
	if model == "" {
		model = defaultModel
	}
	return &Gemini{apiKey: apiKey, model: model}
}

// Extract sends the cover image to Gemini and parses the structured
// response into a Book guess. The isbn field is normalized before
// returning; any transport or parse failure surfaces as an error.
func (g *Gemini) Extract(ctx context.Context, image []byte) (*models.Book, error) {
	if g.apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat(image), image),
		genai.Text(extractionPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	return parseGuess(string(txt))
}

// imageFormat sniffs the image type for the inline data part, defaulting
// to jpeg
func imageFormat(image []byte) string {
	switch http.DetectContentType(image) {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}

// parseGuess parses the model's JSON payload. Missing keys fall back to
// zero values; markdown code fences are tolerated.
func parseGuess(response string) (*models.Book, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var payload struct {
		ISBN      string `json:"isbn"`
		Titulo    string `json:"titulo"`
		Autor     string `json:"autor"`
		Anio      int    `json:"anio"`
		Editorial string `json:"editorial"`
	}
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	if payload.Anio < 0 {
		payload.Anio = 0
	}

	return &models.Book{
		ISBN:      isbn.Normalize(payload.ISBN),
		Title:     strings.TrimSpace(payload.Titulo),
		Author:    strings.TrimSpace(payload.Autor),
		Year:      payload.Anio,
		Publisher: strings.TrimSpace(payload.Editorial),
	}, nil
}
