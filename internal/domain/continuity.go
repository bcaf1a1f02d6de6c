package domain

// continuityWindow is how many encounters before the active one are examined
// for echoes.
const continuityWindow = 3

// ExtractPreviousReadings collects completed reading lines from the
// encounters immediately preceding the active one, in original order. The
// active encounter itself is never included and the extractor never looks
// forward. Encounters without a client name or without any completed text are
// skipped. Direct-shape requests carry no game state, so they get no echoes.
func ExtractPreviousReadings(req ReadingRequest) []PreviousReading {
	if !req.HasGameState() || req.ActiveEncounterIndex < 0 {
		return nil
	}

	encounters := asArray(req.GameState["encounters"])
	var previous []PreviousReading

	start := max(0, req.ActiveEncounterIndex-continuityWindow)
	for i := start; i < req.ActiveEncounterIndex && i < len(encounters); i++ {
		enc := asRecord(encounters[i])
		if enc == nil {
			continue
		}

		name := asNonEmptyString(asRecord(enc["client"])["name"])
		if name == "" {
			continue
		}

		var readings []string
		for _, s := range asArray(enc["slots"]) {
			if text := asNonEmptyString(asRecord(s)["text"]); text != "" {
				readings = append(readings, text)
			}
		}

		if len(readings) > 0 {
			previous = append(previous, PreviousReading{Client: name, Readings: readings})
		}
	}

	return previous
}
