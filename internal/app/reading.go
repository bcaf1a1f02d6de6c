package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spookyuser/tarot-game/internal/domain"
	"github.com/spookyuser/tarot-game/internal/ports"
)

// readingMaxTokens caps the generated slot text. One sentence fits easily.
const readingMaxTokens = 150

// ReadingService runs the full slot-generation pipeline: normalize the
// payload, resolve the target slot, assemble the prompt, call the generator
// once, and reconcile the result back into whichever shape the caller sent.
// Stateless: everything a call needs arrives in the request.
type ReadingService struct {
	cards     ports.CardSource
	generator ports.Generator
}

func NewReadingService(cards ports.CardSource, generator ports.Generator) *ReadingService {
	return &ReadingService{cards: cards, generator: generator}
}

// ReadingResult is the outcome of one generation call.
type ReadingResult struct {
	Client     domain.Client
	Slots      []domain.Slot
	Generated  string
	FilledSlot int
	// GameState is the patched copy of the caller's document, nil when the
	// request was direct-shape.
	GameState            map[string]any
	ActiveEncounterIndex int
	HadGameState         bool
}

// GenerateReading accepts an untrusted decoded JSON body in either payload
// shape and fills the single eligible slot. Input-validation failures
// (domain.ErrInvalidPayload, domain.ErrNoTargetSlot) are detected before any
// generation call is made; upstream failures surface as domain.ErrUpstreamLLM
// with the request state untouched.
func (s *ReadingService) GenerateReading(ctx context.Context, body any) (ReadingResult, error) {
	req, err := domain.NormalizeRequest(body)
	if err != nil {
		return ReadingResult{}, err
	}

	targetIndex, err := domain.ResolveTargetSlot(req.Slots)
	if err != nil {
		return ReadingResult{}, err
	}

	payload, err := s.buildPromptPayload(req)
	if err != nil {
		return ReadingResult{}, err
	}

	generated, err := s.generator.Generate(ctx, ports.GenerateRequest{
		System:    readingSystemPrompt,
		Prompt:    payload,
		MaxTokens: readingMaxTokens,
	})
	if err != nil {
		return ReadingResult{}, fmt.Errorf("generate slot text: %w", err)
	}
	generated = strings.TrimSpace(generated)

	updatedSlots := make([]domain.Slot, len(req.Slots))
	copy(updatedSlots, req.Slots)
	updatedSlots[targetIndex].Text = generated

	return ReadingResult{
		Client:               req.Client,
		Slots:                updatedSlots,
		Generated:            generated,
		FilledSlot:           targetIndex,
		GameState:            domain.ReconcileGameState(req, updatedSlots),
		ActiveEncounterIndex: req.ActiveEncounterIndex,
		HadGameState:         req.HasGameState(),
	}, nil
}
