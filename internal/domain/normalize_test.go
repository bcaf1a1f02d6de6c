package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/spookyuser/tarot-game/internal/domain"
)

// decode parses a JSON literal the way the HTTP layer does, so normalization
// sees exactly what it would see in production.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var body any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatalf("bad test JSON: %v", err)
	}
	return body
}

func TestNormalizeRequest_DirectShape(t *testing.T) {
	body := decode(t, `{
		"client": {"name": "David", "situation": "found a sealed letter", "age": 34},
		"slots": [
			{"index": 0, "card": "the_moon", "text": "A ship arrives at dusk."},
			{"index": 1, "card": "justice", "text": null},
			{"index": 2, "card": null, "text": null}
		]
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Client.Name != "David" {
		t.Errorf("name: got %q", req.Client.Name)
	}
	if req.Client.Situation != "found a sealed letter" {
		t.Errorf("situation: got %q", req.Client.Situation)
	}
	if req.Client.Age == nil || *req.Client.Age != 34 {
		t.Errorf("age: got %v", req.Client.Age)
	}
	if req.HasGameState() {
		t.Error("direct shape should carry no game state")
	}

	if len(req.Slots) != domain.SlotCount {
		t.Fatalf("expected %d slots, got %d", domain.SlotCount, len(req.Slots))
	}
	if req.Slots[0].Card != "the moon" {
		t.Errorf("slot 0 card: got %q, want spaced form", req.Slots[0].Card)
	}
	if req.Slots[1].Card != "justice" || req.Slots[1].Text != "" {
		t.Errorf("slot 1: got card=%q text=%q", req.Slots[1].Card, req.Slots[1].Text)
	}
	if req.Slots[2].Card != "" {
		t.Errorf("slot 2 card: got %q, want empty", req.Slots[2].Card)
	}
}

func TestNormalizeRequest_DirectShapeMissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no client", `{"slots": [{"index": 0}]}`},
		{"no slots", `{"client": {"name": "David", "situation": "lost"}}`},
		{"empty slots", `{"client": {"name": "David", "situation": "lost"}, "slots": []}`},
		{"blank name", `{"client": {"name": "  ", "situation": "lost"}, "slots": [{}]}`},
		{"blank situation", `{"client": {"name": "David", "situation": ""}, "slots": [{}]}`},
		{"not an object", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NormalizeRequest(decode(t, tt.raw))
			if err != domain.ErrInvalidPayload {
				t.Errorf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestNormalizeRequest_ShortSlotsArrayPadded(t *testing.T) {
	body := decode(t, `{
		"client": {"name": "Pell", "situation": "the token came back"},
		"slots": [{"index": 0, "card": "death"}]
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(req.Slots))
	}
	for i, s := range req.Slots {
		if s.Index != i {
			t.Errorf("slot %d: index %d", i, s.Index)
		}
	}
	if req.Slots[1].Card != "" || req.Slots[2].Card != "" {
		t.Error("padded slots should be empty")
	}
}

func TestNormalizeRequest_AgeOnlyWhenFiniteNumber(t *testing.T) {
	body := decode(t, `{
		"client": {"name": "Ines", "situation": "the tin moved", "age": "forty"},
		"slots": [{"index": 0, "card": "the_star"}]
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Client.Age != nil {
		t.Errorf("non-numeric age should be dropped, got %v", *req.Client.Age)
	}
}

func TestNormalizeRequest_GameShapeContextFallback(t *testing.T) {
	// context is empty, situation carries the value.
	body := decode(t, `{
		"game_state": {
			"encounters": [
				{"client": {"name": "A", "context": "first"}, "slots": []},
				{"client": {"name": "Tomas", "context": "", "situation": "stuck"},
				 "slots": [{"card": "the_tower", "text": ""}]}
			]
		},
		"active_encounter_index": 5
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Index 5 clamps to the last encounter.
	if req.ActiveEncounterIndex != 1 {
		t.Errorf("active index: got %d, want 1", req.ActiveEncounterIndex)
	}
	if req.Client.Situation != "stuck" {
		t.Errorf("situation: got %q, want fallback to situation field", req.Client.Situation)
	}
	if !req.HasGameState() {
		t.Error("game shape should carry game state")
	}
	if req.Slots[0].Card != "the tower" {
		t.Errorf("slot 0 card: got %q", req.Slots[0].Card)
	}
}

func TestNormalizeRequest_GameShapeContextWinsOverSituation(t *testing.T) {
	body := decode(t, `{
		"game_state": {
			"encounters": [
				{"client": {"name": "Marguerite", "context": "ship overdue", "situation": "ignored"}, "slots": []}
			]
		}
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Client.Situation != "ship overdue" {
		t.Errorf("situation: got %q, want context value", req.Client.Situation)
	}
	if req.ActiveEncounterIndex != 0 {
		t.Errorf("missing index should default to 0, got %d", req.ActiveEncounterIndex)
	}
}

func TestNormalizeRequest_GameShapeNegativeIndexClamped(t *testing.T) {
	body := decode(t, `{
		"game_state": {
			"encounters": [{"client": {"name": "Pell", "context": "the token"}, "slots": []}]
		},
		"active_encounter_index": -4
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ActiveEncounterIndex != 0 {
		t.Errorf("active index: got %d, want 0", req.ActiveEncounterIndex)
	}
}

func TestNormalizeRequest_RuntimeStateReplacesPersistedSlot(t *testing.T) {
	// Runtime has a card for slot 1 but no text entry there: the persisted
	// slot 1 must be ignored entirely, leaving a carded slot with no text.
	body := decode(t, `{
		"game_state": {
			"encounters": [{
				"client": {"name": "David", "context": "the letter"},
				"slots": [
					{"card": "the_moon", "text": "old text 0"},
					{"card": "the_sun", "text": "old text 1"},
					{"card": "", "text": ""}
				]
			}]
		},
		"active_encounter_index": 0,
		"runtime_state": {
			"slot_cards": ["the_moon", "justice"],
			"slot_texts": ["A ship arrives at dusk."],
			"slot_orientations": ["upright", "reversed"]
		}
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Slots[0].Card != "the moon" || req.Slots[0].Text != "A ship arrives at dusk." {
		t.Errorf("slot 0: got card=%q text=%q", req.Slots[0].Card, req.Slots[0].Text)
	}
	if req.Slots[0].Orientation != domain.Upright {
		t.Errorf("slot 0 orientation: got %q", req.Slots[0].Orientation)
	}

	if req.Slots[1].Card != "justice" {
		t.Errorf("slot 1 card: got %q, want runtime card", req.Slots[1].Card)
	}
	if req.Slots[1].Text != "" {
		t.Errorf("slot 1 text: got %q, want empty (persisted text ignored)", req.Slots[1].Text)
	}
	if req.Slots[1].Orientation != domain.Reversed {
		t.Errorf("slot 1 orientation: got %q", req.Slots[1].Orientation)
	}

	// Slot 2 has no runtime entries at all, so the persisted slot applies.
	if req.Slots[2].Card != "" || req.Slots[2].Text != "" {
		t.Errorf("slot 2: got card=%q text=%q", req.Slots[2].Card, req.Slots[2].Text)
	}
}

func TestNormalizeRequest_GameShapeTriedFirst(t *testing.T) {
	// Both shapes present: the game-state shape must win.
	body := decode(t, `{
		"client": {"name": "Direct", "situation": "ignored"},
		"slots": [{"card": "death"}],
		"game_state": {
			"encounters": [{"client": {"name": "FromGame", "context": "from the game"}, "slots": []}]
		}
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Client.Name != "FromGame" {
		t.Errorf("client name: got %q, want the game-state client", req.Client.Name)
	}
}

func TestNormalizeRequest_InvalidGameShapeFallsThroughToDirect(t *testing.T) {
	// game_state present but with no encounters: the direct shape still
	// matches and must be used.
	body := decode(t, `{
		"client": {"name": "David", "situation": "found a sealed letter"},
		"slots": [{"card": "the_moon"}],
		"game_state": {"encounters": []}
	}`)

	req, err := domain.NormalizeRequest(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Client.Name != "David" || req.HasGameState() {
		t.Errorf("expected direct-shape normalization, got %+v", req)
	}
}

func TestNormalizeCardName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"the_moon", "the moon"},
		{"the moon", "the moon"},
		{"  wheel_of_fortune  ", "wheel of fortune"},
		{"justice", "justice"},
	}
	for _, tt := range tests {
		if got := domain.NormalizeCardName(tt.in); got != tt.want {
			t.Errorf("NormalizeCardName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Idempotent: normalizing an already-normalized name is a no-op.
	once := domain.NormalizeCardName("the_high_priestess")
	if twice := domain.NormalizeCardName(once); twice != once {
		t.Errorf("not idempotent: %q -> %q", once, twice)
	}
}

func TestNormalizeOrientation(t *testing.T) {
	tests := []struct {
		in   any
		want domain.Orientation
	}{
		{"upright", domain.Upright},
		{"reversed", domain.Reversed},
		{" reversed ", domain.Reversed},
		{"sideways", domain.OrientationNone},
		{"", domain.OrientationNone},
		{nil, domain.OrientationNone},
		{42.0, domain.OrientationNone},
	}
	for _, tt := range tests {
		if got := domain.NormalizeOrientation(tt.in); got != tt.want {
			t.Errorf("NormalizeOrientation(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
