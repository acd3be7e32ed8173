package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("no response candidates from Gemini")

var _ LLMProvider = (*GeminiProvider)(nil)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	// Classification wants stable answers.
	model.SetTemperature(0.1)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) ResolveIntent(ctx context.Context, message string, state string, allowed []string) (string, error) {
	var result IntentResult
	if err := p.generate(ctx, buildIntentPrompt(message, state, allowed), &result); err != nil {
		return "", err
	}
	return result.Intent, nil
}

func (p *GeminiProvider) ParseRequest(ctx context.Context, message string) (*IntentResult, error) {
	var result IntentResult
	if err := p.generate(ctx, buildRequestPrompt(message), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string, out any) error {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ErrEmptyResponse
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	cleanJSON := cleanJSONString(responseText.String())
	if err := json.Unmarshal([]byte(cleanJSON), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return nil
}

func buildIntentPrompt(message, state string, allowed []string) string {
	if state == "" {
		state = "initial"
	}
	return fmt.Sprintf(`Role: You classify messages for "FoodieSpot", a restaurant reservation assistant.
Context:
- Dialogue state: %s

RULES:
1. Answer with exactly one label from: %s.
2. "confirm_booking" only when the user agrees to finalize (yes, confirm, book it).
3. "modify_booking" when the user changes a detail already given (change, instead, actually).
4. While the state is gathering_info or modifying, bare details (a name, a number, a time) are "provide_info".
5. When unsure, answer "general_inquiry".

OUTPUT: a JSON object {"intent": "<label>", "reason": "<short reason>"}.

User Message: %q`, state, strings.Join(allowed, ", "), message)
}

func buildRequestPrompt(message string) string {
	return fmt.Sprintf(`Role: You are the assistant for "FoodieSpot". Given the user's message, decide whether the user wants to book a reservation or get a restaurant recommendation.

OUTPUT: a JSON object with keys
- "intent": one of "book_reservation", "get_recommendations", "general_inquiry".
- "parameters": {"restaurant_name", "date", "time", "party_size", "cuisine", "location"}. Use null for anything the message does not state. "time" is HH:MM in 24-hour form, "party_size" is an integer.

User Message: %q`, message)
}

// cleanJSONString strips the markdown fences some responses still carry.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
