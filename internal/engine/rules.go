package engine

import (
	"errors"
	"math/rand"

	"github.com/Rukaro/HeartBreaker/internal/game"
)

// Rules holds the table sizes used when dealing and refilling.
type Rules struct {
	// HandSize is the number of cards dealt next to the spade king.
	HandSize int
	// EnemySlots is the size of the face-up enemy row.
	EnemySlots int
}

// DefaultRules matches the classic table: spade king plus four cards, four enemies.
var DefaultRules = Rules{HandSize: 4, EnemySlots: 4}

var (
	ErrInvalidEnemyIndex  = errors.New("invalid enemy index")
	ErrInvalidCardIndex   = errors.New("invalid card index")
	ErrSpadeKingProtected = errors.New("the spade king cannot be discarded")
	ErrGameOver           = errors.New("game is over")
)

// Deal prepares a fresh game in rec: the spade king is taken out of the
// deck and placed in hand, the rest is shuffled, HandSize cards are drawn
// and the enemy row is filled.
func Deal(rec *game.Record, rng *rand.Rand, rules Rules) {
	deck := game.NewDeck()
	var spadeKing game.Card
	rest := make([]game.Card, 0, len(deck)-1)
	for _, c := range deck {
		if c.IsSpadeKing() {
			spadeKing = c
			continue
		}
		rest = append(rest, c)
	}
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	rec.Hand = game.Pile{spadeKing}
	rec.Deck = game.Pile(rest)
	for i := 0; i < rules.HandSize && len(rec.Deck) > 0; i++ {
		rec.Hand = append(rec.Hand, rec.Deck[0])
		rec.Deck = rec.Deck[1:]
	}
	rec.Enemies = game.Pile{}
	rec.KingsDefeated = 0
	rec.IsGameOver = false
	rec.IsVictory = false
	refillEnemies(rec, rules)
}

func refillEnemies(rec *game.Record, rules Rules) {
	for len(rec.Enemies) < rules.EnemySlots && len(rec.Deck) > 0 {
		rec.Enemies = append(rec.Enemies, rec.Deck[0])
		rec.Deck = rec.Deck[1:]
	}
}

// EnemyValues returns the numeric value of every enemy, using the enemy
// row as joker context.
func EnemyValues(enemies []game.Card) []int {
	out := make([]int, len(enemies))
	for i, e := range enemies {
		out[i] = game.NumericValue(e, enemies)
	}
	return out
}

// HandValues returns each hand card with its value in hand context.
func HandValues(hand []game.Card) []game.HandValue {
	out := make([]game.HandValue, len(hand))
	for i, c := range hand {
		out[i] = game.HandValue{Card: c, NumericValue: game.NumericValue(c, hand)}
	}
	return out
}

// TargetValue returns the numeric value of enemy idx.
func TargetValue(rec *game.Record, idx int) (int, error) {
	if idx < 0 || idx >= len(rec.Enemies) {
		return 0, ErrInvalidEnemyIndex
	}
	return game.NumericValue(rec.Enemies[idx], rec.Enemies), nil
}

// DefeatEnemy removes enemy idx, refills the row and moves the defeated
// card into the hand. Kings count towards victory. When neither enemies nor
// deck remain and the game is not won, it ends in defeat.
// The caller is responsible for proving the attack first.
func DefeatEnemy(rec *game.Record, idx int, rules Rules) (game.Card, error) {
	if rec.IsGameOver {
		return game.Card{}, ErrGameOver
	}
	if idx < 0 || idx >= len(rec.Enemies) {
		return game.Card{}, ErrInvalidEnemyIndex
	}
	defeated := rec.Enemies[idx]
	if defeated.IsKing() {
		rec.KingsDefeated++
	}
	enemies := make(game.Pile, 0, len(rec.Enemies)-1)
	enemies = append(enemies, rec.Enemies[:idx]...)
	rec.Enemies = append(enemies, rec.Enemies[idx+1:]...)
	refillEnemies(rec, rules)
	rec.Hand = append(rec.Hand, defeated)

	switch {
	case rec.KingsDefeated >= game.KingsToWin:
		rec.KingsDefeated = game.KingsToWin
		rec.IsGameOver = true
		rec.IsVictory = true
	case len(rec.Enemies) == 0 && len(rec.Deck) == 0:
		rec.IsGameOver = true
	}
	return defeated, nil
}

// Discard removes hand card idx. The spade king is protected.
func Discard(rec *game.Record, idx int) (game.Card, error) {
	if rec.IsGameOver {
		return game.Card{}, ErrGameOver
	}
	if idx < 0 || idx >= len(rec.Hand) {
		return game.Card{}, ErrInvalidCardIndex
	}
	c := rec.Hand[idx]
	if c.IsSpadeKing() {
		return game.Card{}, ErrSpadeKingProtected
	}
	hand := make(game.Pile, 0, len(rec.Hand)-1)
	hand = append(hand, rec.Hand[:idx]...)
	rec.Hand = append(hand, rec.Hand[idx+1:]...)
	return c, nil
}
