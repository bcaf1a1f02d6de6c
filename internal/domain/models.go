package domain

// SlotCount is the fixed number of slots in a reading: past, present, future.
const SlotCount = 3

// Orientation represents the orientation of a placed tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
	// OrientationNone marks a slot whose orientation was not supplied.
	OrientationNone Orientation = ""
)

// Sentiment is the broad outcome leaning of a card.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// CardDef is a single card's static definition. Loaded once per process and
// never mutated afterwards.
type CardDef struct {
	Name         string    `json:"name"`
	FrontImage   string    `json:"front_image,omitempty"`
	Arcana       string    `json:"arcana"`
	Suit         string    `json:"suit"`
	Value        string    `json:"value"`
	NumericValue int       `json:"numeric_value"`
	Sentiment    Sentiment `json:"sentiment,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Description  string    `json:"description,omitempty"`
}

// ClientDef is an entry in the static client roster.
type ClientDef struct {
	Name  string `json:"name"`
	Story string `json:"story"`
}

// Client is the person receiving a reading. Supplied per request, never stored.
type Client struct {
	Name      string   `json:"name"`
	Situation string   `json:"situation"`
	Age       *float64 `json:"age,omitempty"`
}

// Slot is one of the three ordered positions in a reading. Empty strings mean
// "absent": normalization trims whitespace, so a present value is never blank.
type Slot struct {
	Index       int
	Card        string
	Text        string
	Orientation Orientation
}

// ReadingRequest is the canonical form both accepted payload shapes normalize
// into. GameState is a foreign document owned by the caller: this core reads
// one encounter out of it and patches that same encounter's slots back in,
// nothing more.
type ReadingRequest struct {
	Client               Client
	Slots                []Slot
	GameState            map[string]any
	ActiveEncounterIndex int
	EncounterStory       string
}

// HasGameState reports whether the request arrived in game-state shape.
func (r ReadingRequest) HasGameState() bool {
	return r.GameState != nil
}

// PreviousReading is one prior client's completed reading lines, used for
// occasional cross-reading echoes.
type PreviousReading struct {
	Client   string   `json:"client"`
	Readings []string `json:"readings"`
}
