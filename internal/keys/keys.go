package keys

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Rukaro/HeartBreaker/internal/game"
)

// HandKey produces a canonical key for a hand of cards.
// Behavior: takes each card key, sorts them and joins with underscore, so
// two hands holding the same cards in a different order share a key.
func HandKey(hand []game.Card) string {
	parts := make([]string, 0, len(hand))
	for _, c := range hand {
		parts = append(parts, c.Key())
	}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}

// SolveKey identifies one solver job: a hand and the value it must reach.
func SolveKey(hand []game.Card, target int) string {
	return HandKey(hand) + "=" + strconv.Itoa(target)
}
