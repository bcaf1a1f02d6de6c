package domain

// ReconcileGameState folds the updated slots back into the caller's game
// state. The whole document is deep-copied first so the input is never
// mutated and concurrent requests over the same logical state cannot alias
// each other's copies. Only encounters[activeIndex].slots is rewritten, in
// the persisted {card, text} shape with "" standing in for absent values;
// every other encounter and every unrelated key passes through unchanged.
// Returns nil when the request carried no game state.
func ReconcileGameState(req ReadingRequest, updatedSlots []Slot) map[string]any {
	if !req.HasGameState() {
		return nil
	}

	next := deepCopyRecord(req.GameState)
	encounters := asArray(next["encounters"])
	if req.ActiveEncounterIndex < 0 || req.ActiveEncounterIndex >= len(encounters) {
		return next
	}

	encounter := asRecord(encounters[req.ActiveEncounterIndex])
	if encounter == nil {
		return next
	}

	persisted := make([]any, len(updatedSlots))
	for i, s := range updatedSlots {
		persisted[i] = map[string]any{
			"card": s.Card,
			"text": s.Text,
		}
	}
	encounter["slots"] = persisted

	return next
}

// deepCopyValue copies any JSON-decoded value: objects and arrays are copied
// recursively, scalars are returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyRecord(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return val
	}
}

func deepCopyRecord(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}
