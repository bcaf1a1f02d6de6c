package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spookyuser/tarot-game/internal/domain"
	"github.com/spookyuser/tarot-game/internal/ports"
)

const summarySystemPrompt = `You are the narrator of a tarot reading session. The reader has just finished their shift.
Review the clients they saw today and the readings they gave.
Write a 2-3 paragraph reflective summary of the day's events.
Write in the third person, focusing on the reader's experience, the atmosphere, and the recurring themes or distinct differences in the clients' fates.
Do NOT just list what happened. Make it a cohesive, atmospheric story about the burden and insight of reading the cards.`

const (
	summaryMaxTokens   = 1024
	summaryTemperature = 0.6
)

// SummaryService turns a finished session's game state into a reflective
// end-of-day narrative.
type SummaryService struct {
	generator ports.Generator
}

func NewSummaryService(generator ports.Generator) *SummaryService {
	return &SummaryService{generator: generator}
}

// Summarize formats every encounter in game_state into a session transcript
// and asks the generator for the closing narration. The game state is read
// only; nothing is written back.
func (s *SummaryService) Summarize(ctx context.Context, body any) (string, error) {
	encounters, err := sessionEncounters(body)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"Here are the clients the reader saw today:\n\n%s\n\nPlease write the final reflective summary of the day.",
		formatTranscript(encounters),
	)

	summary, err := s.generator.Generate(ctx, ports.GenerateRequest{
		System:      summarySystemPrompt,
		Prompt:      prompt,
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

func sessionEncounters(body any) ([]any, error) {
	raw, ok := body.(map[string]any)
	if !ok {
		return nil, domain.ErrNoEncounters
	}
	gameState, ok := raw["game_state"].(map[string]any)
	if !ok {
		return nil, domain.ErrNoEncounters
	}
	encounters, ok := gameState["encounters"].([]any)
	if !ok || len(encounters) == 0 {
		return nil, domain.ErrNoEncounters
	}
	return encounters, nil
}

// formatTranscript renders each encounter as a short block: who the client
// was, what brought them in, and every completed reading line with its card.
func formatTranscript(encounters []any) string {
	blocks := make([]string, 0, len(encounters))

	for i, e := range encounters {
		enc, _ := e.(map[string]any)
		client, _ := enc["client"].(map[string]any)

		name := stringOr(client["name"], "Unknown Client")
		context := stringOr(client["context"], "No context provided.")

		var lines []string
		if slots, ok := enc["slots"].([]any); ok {
			for j, sl := range slots {
				slot, _ := sl.(map[string]any)
				text, _ := slot["text"].(string)
				if text == "" {
					continue
				}
				card := stringOr(slot["card"], "Unknown")
				reversed := ""
				if orientation, _ := slot["orientation"].(string); orientation == "reversed" {
					reversed = " Reversed"
				}
				lines = append(lines, fmt.Sprintf("Card %d (%s%s): %s", j+1, card, reversed, text))
			}
		}

		blocks = append(blocks, fmt.Sprintf(
			"Client %d: %s\nTrouble: %s\nReading:\n%s",
			i+1, name, context, strings.Join(lines, "\n"),
		))
	}

	return strings.Join(blocks, "\n\n")
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
