package domain

import "errors"

var (
	ErrInvalidPayload = errors.New("invalid request body: send either {client, slots} or {game_state, active_encounter_index, runtime_state}")
	ErrNoTargetSlot   = errors.New("no target slot found: one slot must have a card with no text")
	ErrNoEncounters   = errors.New("missing or invalid game_state.encounters")
	ErrUpstreamLLM    = errors.New("upstream LLM failure")
)
