// ABOUTME: Context card retrieval with primary and fallback static paths
// ABOUTME: Total failure yields an empty list; never fatal to the caller

package dialog

import (
	"context"
	"fmt"

	"github.com/mauromedda/dialogstream-go/internal/log"
)

// maxCards is the fixed card count the init handshake accepts besides zero.
const maxCards = 3

// Cards fetches the static card list, trying the primary path and then the
// fallback. An empty list is a valid, expected state; callers must not treat
// the returned error as fatal.
func (c *Client) Cards(ctx context.Context) ([]Card, error) {
	var cards []Card
	if err := c.http.GetJSON(ctx, c.cardPath, &cards); err != nil {
		log.Debug("card fetch at %s failed, trying fallback: %v", c.cardPath, err)
		cards = nil
		if err := c.http.GetJSON(ctx, c.cardFallbackPath, &cards); err != nil {
			return nil, fmt.Errorf("card fetch (both paths): %w", err)
		}
	}

	// The handshake accepts exactly zero or three cards: trim oversized
	// lists and degrade partial ones to empty.
	if len(cards) > maxCards {
		cards = cards[:maxCards]
	}
	if len(cards) != 0 && len(cards) < maxCards {
		log.Debug("card list of %d unusable, substituting empty list", len(cards))
		cards = nil
	}
	return cards, nil
}
