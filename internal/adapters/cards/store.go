package cards

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/spookyuser/tarot-game/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

// EmbeddedStore serves card definitions and the client roster from embedded
// JSON. Loaded once, read-only afterwards, safe for concurrent readers.
type EmbeddedStore struct {
	once    sync.Once
	cards   []domain.CardDef
	clients []domain.ClientDef
	lookup  map[string]domain.CardDef
	err     error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := dataFS.ReadFile("data/cards.json")
	if err != nil {
		s.err = fmt.Errorf("read embedded cards: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &s.cards); err != nil {
		s.err = fmt.Errorf("parse embedded cards: %w", err)
		return
	}

	sort.Slice(s.cards, func(i, j int) bool {
		if s.cards[i].NumericValue != s.cards[j].NumericValue {
			return s.cards[i].NumericValue < s.cards[j].NumericValue
		}
		return s.cards[i].Name < s.cards[j].Name
	})

	// Register both spellings up front so query sites never re-derive
	// variants: "the_moon" and "the moon" hit the same definition.
	s.lookup = make(map[string]domain.CardDef, 2*len(s.cards))
	for _, c := range s.cards {
		s.lookup[c.Name] = c
		s.lookup[domain.NormalizeCardName(c.Name)] = c
	}

	raw, err = dataFS.ReadFile("data/clients.json")
	if err != nil {
		s.err = fmt.Errorf("read embedded clients: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &s.clients); err != nil {
		s.err = fmt.Errorf("parse embedded clients: %w", err)
	}
}

// Lookup resolves a card by either spelling. A miss returns false, never an
// error: readings degrade to the bare card name.
func (s *EmbeddedStore) Lookup(name string) (domain.CardDef, bool) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.CardDef{}, false
	}
	def, ok := s.lookup[name]
	return def, ok
}

// Cards returns all definitions sorted by numeric value, then name.
func (s *EmbeddedStore) Cards(_ context.Context) ([]domain.CardDef, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	return s.cards, nil
}

// Clients returns the static client roster.
func (s *EmbeddedStore) Clients(_ context.Context) ([]domain.ClientDef, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	return s.clients, nil
}
