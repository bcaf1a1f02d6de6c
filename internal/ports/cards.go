package ports

import (
	"context"

	"github.com/spookyuser/tarot-game/internal/domain"
)

// CardSource provides read-only access to card definitions.
type CardSource interface {
	// Lookup resolves a card by name, accepting both the underscored and the
	// spaced spelling. A miss is not an error: readings proceed without
	// metadata.
	Lookup(name string) (domain.CardDef, bool)

	// Cards returns all card definitions sorted by numeric value, then name.
	Cards(ctx context.Context) ([]domain.CardDef, error)
}

// ClientSource provides the static client roster.
type ClientSource interface {
	Clients(ctx context.Context) ([]domain.ClientDef, error)
}
