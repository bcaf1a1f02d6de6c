package app

import (
	"encoding/json"
	"fmt"

	"github.com/spookyuser/tarot-game/internal/domain"
)

// readingSystemPrompt frames the generation call. The model receives the
// client, the three slots, and optionally prior readings, and must return a
// single sentence for the one unfilled slot.
const readingSystemPrompt = `You are an oracle in a port town. The cards show what will happen — not metaphors, not advice, but events that are already in motion.

You'll receive a client (who they are, what brought them here) and three reading slots. Exactly one slot has a card placed but no text yet. Write one sentence for that slot.

## Voice
- Second person ("you")
- One sentence. Short enough to read at a glance.
- Concrete and specific: a person's name, a street, an object, a time of day. No abstractions, no metaphors, no poetic flourishes
- These events WILL happen. Write them as settled fact.
- Slightly oblique — the event is clear, but its full meaning may not be obvious yet

## Using the Card
A reversed card means the energy is blocked, inverted, or arrives unwanted. The event still happens — it just cuts differently.

## Slot Positions
- Slot 0: Something arrives or is discovered
- Slot 1: Something shifts or complicates
- Slot 2: Where it leads — a door opens or closes
If earlier slots have text, continue from them. Never contradict what's established.

## Echoes Across Readings
If previous readings from other clients are included, you may OCCASIONALLY reuse a specific detail from an earlier reading — the same street name, object, time of day, or person's name — woven naturally into THIS client's event. Do this rarely (at most once per full reading, and not every reading). Never explain the connection. Never call attention to it. The player notices, or they don't.

Return ONLY the sentence. No JSON. No quotes. No commentary. It should be short and direct enough to fit on a small slip of paper.`

// enrichedSlot is a slot as presented to the model: the normalized slot plus
// whatever card metadata resolved. Missing metadata is simply omitted.
type enrichedSlot struct {
	Index       int              `json:"index"`
	Card        *string          `json:"card"`
	Text        *string          `json:"text"`
	Orientation *string          `json:"orientation"`
	CardMeaning string           `json:"card_meaning,omitempty"`
	CardTags    []string         `json:"card_tags,omitempty"`
	CardOutcome domain.Sentiment `json:"card_outcome,omitempty"`
}

type promptPayload struct {
	Client           domain.Client            `json:"client"`
	Slots            []enrichedSlot           `json:"slots"`
	PreviousReadings []domain.PreviousReading `json:"previous_readings,omitempty"`
}

// buildPromptPayload assembles the deterministic user content for the
// generation call: client first, then the three slots in order, then prior
// readings only when any exist. Pure function of its inputs.
func (s *ReadingService) buildPromptPayload(req domain.ReadingRequest) (string, error) {
	slots := make([]enrichedSlot, len(req.Slots))
	for i, slot := range req.Slots {
		slots[i] = s.enrichSlot(slot)
	}

	payload := promptPayload{
		Client:           req.Client,
		Slots:            slots,
		PreviousReadings: domain.ExtractPreviousReadings(req),
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal prompt payload: %w", err)
	}
	return string(out), nil
}

func (s *ReadingService) enrichSlot(slot domain.Slot) enrichedSlot {
	enriched := enrichedSlot{
		Index:       slot.Index,
		Card:        nullable(slot.Card),
		Text:        nullable(slot.Text),
		Orientation: nullable(string(slot.Orientation)),
	}

	if slot.Card == "" {
		return enriched
	}

	def, ok := s.cards.Lookup(slot.Card)
	if !ok {
		// Unknown card: the reading proceeds with the name alone.
		return enriched
	}

	enriched.CardMeaning = def.Description
	if len(def.Keywords) > 0 {
		enriched.CardTags = def.Keywords
	} else if len(def.Tags) > 0 {
		enriched.CardTags = def.Tags
	}
	enriched.CardOutcome = def.Sentiment

	return enriched
}

// nullable maps the domain's empty-means-absent convention to JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
