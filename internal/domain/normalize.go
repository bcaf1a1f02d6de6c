package domain

import (
	"math"
	"strings"
)

// The service accepts two payload shapes at the same endpoint. The game-state
// shape is tried first; the direct shape is the fallback. Both normalize into
// the same canonical ReadingRequest so everything downstream sees one form.

// asRecord returns v as a JSON object, or nil if it is anything else.
func asRecord(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// asArray returns v as a JSON array, or an empty slice if it is anything else.
func asArray(v any) []any {
	a, ok := v.([]any)
	if !ok {
		return nil
	}
	return a
}

// asNonEmptyString returns the trimmed string value of v, or "" if v is not a
// string or trims to nothing. Blank strings count as absent everywhere.
func asNonEmptyString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// asInteger returns v as an int if it is a whole JSON number.
func asInteger(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	case int:
		return n, true
	}
	return 0, false
}

// NormalizeCardName converts a card name to its canonical spaced form:
// underscores become spaces, surrounding whitespace is trimmed. Idempotent.
func NormalizeCardName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}

// NormalizeOrientation accepts only the literal strings "upright" and
// "reversed" (after trimming). Anything else is no orientation, never an error.
func NormalizeOrientation(v any) Orientation {
	switch asNonEmptyString(v) {
	case string(Upright):
		return Upright
	case string(Reversed):
		return Reversed
	}
	return OrientationNone
}

// normalizeSlot builds a Slot from an untrusted value at the given position.
// The index always comes from the position, never from the payload.
func normalizeSlot(v any, index int) Slot {
	rec := asRecord(v)

	slot := Slot{Index: index}
	if card := asNonEmptyString(rec["card"]); card != "" {
		slot.Card = NormalizeCardName(card)
	}
	slot.Text = asNonEmptyString(rec["text"])
	slot.Orientation = NormalizeOrientation(rec["orientation"])
	return slot
}

// NormalizeRequest converts an untrusted decoded JSON body into a canonical
// ReadingRequest. The game-state shape wins when both could match. Returns
// ErrInvalidPayload when neither shape matches or required client fields are
// missing.
func NormalizeRequest(body any) (ReadingRequest, error) {
	raw := asRecord(body)
	if raw == nil {
		return ReadingRequest{}, ErrInvalidPayload
	}

	if req, ok := normalizeGamePayload(raw); ok {
		return req, nil
	}
	if req, ok := normalizeDirectPayload(raw); ok {
		return req, nil
	}
	return ReadingRequest{}, ErrInvalidPayload
}

// normalizeDirectPayload handles the {client, slots} shape. Slots are read
// positionally for indices 0..2 regardless of the supplied array's length;
// missing entries become empty slots.
func normalizeDirectPayload(raw map[string]any) (ReadingRequest, bool) {
	clientRec := asRecord(raw["client"])
	slotInputs := asArray(raw["slots"])
	if clientRec == nil || len(slotInputs) == 0 {
		return ReadingRequest{}, false
	}

	name := asNonEmptyString(clientRec["name"])
	situation := asNonEmptyString(clientRec["situation"])
	if name == "" || situation == "" {
		return ReadingRequest{}, false
	}

	client := Client{Name: name, Situation: situation}
	if age, ok := clientRec["age"].(float64); ok && !math.IsNaN(age) && !math.IsInf(age, 0) {
		client.Age = &age
	}

	slots := make([]Slot, SlotCount)
	for i := range slots {
		var in any
		if i < len(slotInputs) {
			in = slotInputs[i]
		}
		slots[i] = normalizeSlot(in, i)
	}

	return ReadingRequest{Client: client, Slots: slots, ActiveEncounterIndex: -1}, true
}

// normalizeGamePayload handles the {game_state, active_encounter_index,
// runtime_state} shape. The requested encounter index is clamped into range;
// the target encounter must carry a client name and either context or
// situation (context wins). A runtime_state sidecar fully replaces a
// position's persisted slot whenever it has an entry for that position, even
// if only one of card/text is present there.
func normalizeGamePayload(raw map[string]any) (ReadingRequest, bool) {
	gameState := asRecord(raw["game_state"])
	if gameState == nil {
		return ReadingRequest{}, false
	}

	encounters := asArray(gameState["encounters"])
	if len(encounters) == 0 {
		return ReadingRequest{}, false
	}

	requested, ok := asInteger(raw["active_encounter_index"])
	if !ok {
		requested = 0
	}
	activeIndex := min(max(requested, 0), len(encounters)-1)

	encounter := asRecord(encounters[activeIndex])
	if encounter == nil {
		return ReadingRequest{}, false
	}

	encClient := asRecord(encounter["client"])
	if encClient == nil {
		return ReadingRequest{}, false
	}
	name := asNonEmptyString(encClient["name"])
	situation := asNonEmptyString(encClient["context"])
	if situation == "" {
		situation = asNonEmptyString(encClient["situation"])
	}
	if name == "" || situation == "" {
		return ReadingRequest{}, false
	}

	runtimeState := asRecord(raw["runtime_state"])
	runtimeCards := asArray(runtimeState["slot_cards"])
	runtimeTexts := asArray(runtimeState["slot_texts"])
	runtimeOrientations := asArray(runtimeState["slot_orientations"])
	encounterSlots := asArray(encounter["slots"])

	slots := make([]Slot, SlotCount)
	for i := range slots {
		hasRuntimeCard := i < len(runtimeCards)
		hasRuntimeText := i < len(runtimeTexts)

		if hasRuntimeCard || hasRuntimeText {
			slot := Slot{Index: i}
			if hasRuntimeCard {
				if card := asNonEmptyString(runtimeCards[i]); card != "" {
					slot.Card = NormalizeCardName(card)
				}
			}
			if hasRuntimeText {
				slot.Text = asNonEmptyString(runtimeTexts[i])
			}
			if i < len(runtimeOrientations) {
				slot.Orientation = NormalizeOrientation(runtimeOrientations[i])
			}
			slots[i] = slot
			continue
		}

		var in any
		if i < len(encounterSlots) {
			in = encounterSlots[i]
		}
		slots[i] = normalizeSlot(in, i)
	}

	var story string
	if s, ok := encounter["story"].(string); ok {
		story = s
	}

	return ReadingRequest{
		Client:               Client{Name: name, Situation: situation},
		Slots:                slots,
		GameState:            gameState,
		ActiveEncounterIndex: activeIndex,
		EncounterStory:       story,
	}, true
}
