package turn

import "github.com/Rukaro/HeartBreaker/internal/game"

// Discardable lists the hand cards that may be discarded, keeping their
// index in the hand. The spade king is never listed.
func Discardable(hand []game.Card) []game.Slot {
	out := make([]game.Slot, 0, len(hand))
	for i, c := range hand {
		if c.IsSpadeKing() {
			continue
		}
		out = append(out, game.Slot{Index: i, Card: c})
	}
	return out
}

// checkDiscard validates a discard locally so bad picks never reach the
// server.
func checkDiscard(hand []game.Card, i int) error {
	if i < 0 || i >= len(hand) {
		return ErrCardOutOfRange
	}
	if hand[i].IsSpadeKing() {
		return ErrSpadeKingProtected
	}
	return nil
}
