package http

import "github.com/spookyuser/tarot-game/internal/domain"

// ReadingResponse is the JSON shape returned by POST /v1/reading. The same
// shape is returned for both accepted payload shapes; game_state and
// active_encounter_index are null for direct-shape requests.
type ReadingResponse struct {
	Client               domain.Client  `json:"client"`
	Slots                []SlotResponse `json:"slots"`
	Generated            string         `json:"generated"`
	FilledSlot           int            `json:"filled_slot"`
	GameState            map[string]any `json:"game_state"`
	ActiveEncounterIndex *int           `json:"active_encounter_index"`
}

// SlotResponse keeps the wire convention of explicit nulls for absent values.
type SlotResponse struct {
	Index       int     `json:"index"`
	Card        *string `json:"card"`
	Text        *string `json:"text"`
	Orientation *string `json:"orientation"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
