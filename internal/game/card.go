package game

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Suit of a playing card. Values match the wire format used by the API.
type Suit string

const (
	SuitSpade   Suit = "♠"
	SuitHeart   Suit = "♥"
	SuitDiamond Suit = "♦"
	SuitClub    Suit = "♣"
	SuitJoker   Suit = "JOKER"
)

// StandardSuits lists the four non-joker suits in deck order.
var StandardSuits = []Suit{SuitSpade, SuitHeart, SuitDiamond, SuitClub}

// JokerKind distinguishes the two jokers. Non-joker cards carry JokerNone.
type JokerKind int

const (
	JokerNone JokerKind = iota
	JokerSmall
	JokerBig
)

const (
	RankAce  = 1
	RankKing = 13

	// smallJokerFallback and bigJokerFallback are the joker values used when
	// the context holds no ranked card to derive them from.
	smallJokerFallback = 1
	bigJokerFallback   = 14
)

// Card is an immutable playing card. Identity is structural: two cards are
// the same card when suit, rank and joker kind match.
type Card struct {
	Suit  Suit
	Rank  int
	Joker JokerKind
}

// NewCard builds a ranked card.
func NewCard(s Suit, rank int) Card { return Card{Suit: s, Rank: rank} }

// NewJoker builds the small or big joker.
func NewJoker(kind JokerKind) Card { return Card{Suit: SuitJoker, Joker: kind} }

func (c Card) IsJoker() bool { return c.Suit == SuitJoker }

// IsSpadeKing reports whether c is the player's protected card.
func (c Card) IsSpadeKing() bool { return c.Suit == SuitSpade && c.Rank == RankKing }

// IsKing reports whether c is a king of any suit. Jokers are never kings.
func (c Card) IsKing() bool { return !c.IsJoker() && c.Rank == RankKing }

func (c Card) Equal(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank && c.Joker == o.Joker
}

// RankLabel returns A, 2..10, J, Q or K.
func (c Card) RankLabel() string {
	switch c.Rank {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return strconv.Itoa(c.Rank)
	}
}

// Display is the human readable form, e.g. "♠K" or "Big Joker".
func (c Card) Display() string {
	if c.IsJoker() {
		if c.Joker == JokerBig {
			return "Big Joker"
		}
		return "Small Joker"
	}
	return string(c.Suit) + c.RankLabel()
}

func (c Card) String() string { return c.Display() }

// Key is a stable structural key, e.g. "♦_7_false".
func (c Card) Key() string {
	return fmt.Sprintf("%s_%d_%t", c.Suit, c.Rank, c.Joker == JokerBig)
}

// NumericValue returns the combat value of c. Ranked cards are worth their
// rank. A big joker takes the highest rank among the non-joker cards of the
// context, a small joker the lowest; with no such card they fall back to 14
// and 1.
func NumericValue(c Card, context []Card) int {
	if !c.IsJoker() {
		return c.Rank
	}
	lo, hi := 0, 0
	for _, o := range context {
		if o.IsJoker() || o.Rank == 0 {
			continue
		}
		if lo == 0 || o.Rank < lo {
			lo = o.Rank
		}
		if o.Rank > hi {
			hi = o.Rank
		}
	}
	if hi == 0 {
		if c.Joker == JokerBig {
			return bigJokerFallback
		}
		return smallJokerFallback
	}
	if c.Joker == JokerBig {
		return hi
	}
	return lo
}

// NewDeck returns the 52 standard cards followed by the small and big jokers.
func NewDeck() []Card {
	deck := make([]Card, 0, 54)
	for _, s := range StandardSuits {
		for r := RankAce; r <= RankKing; r++ {
			deck = append(deck, NewCard(s, r))
		}
	}
	deck = append(deck, NewJoker(JokerSmall), NewJoker(JokerBig))
	return deck
}

// cardJSON is the wire form of a card. Derived flags are emitted for
// clients and ignored on decode.
type cardJSON struct {
	Suit        Suit   `json:"suit"`
	Value       *int   `json:"value"`
	IsBigJoker  bool   `json:"is_big_joker"`
	Display     string `json:"display,omitempty"`
	IsSpadeKing bool   `json:"is_spade_king"`
	IsKing      bool   `json:"is_king"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	out := cardJSON{
		Suit:        c.Suit,
		IsBigJoker:  c.Joker == JokerBig,
		Display:     c.Display(),
		IsSpadeKing: c.IsSpadeKing(),
		IsKing:      c.IsKing(),
	}
	if !c.IsJoker() {
		r := c.Rank
		out.Value = &r
	}
	return json.Marshal(out)
}

func (c *Card) UnmarshalJSON(b []byte) error {
	var in cardJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Suit {
	case SuitJoker:
		*c = NewJoker(JokerSmall)
		if in.IsBigJoker {
			c.Joker = JokerBig
		}
		return nil
	case SuitSpade, SuitHeart, SuitDiamond, SuitClub:
		if in.Value == nil || *in.Value < RankAce || *in.Value > RankKing {
			return fmt.Errorf("card %s: rank out of range", in.Suit)
		}
		*c = NewCard(in.Suit, *in.Value)
		return nil
	default:
		return fmt.Errorf("unknown suit %q", in.Suit)
	}
}

// Enemy is an opponent card in the enemy row. Position is its index in the
// row at the time the snapshot was taken.
type Enemy struct {
	Card     Card
	Position int
}

// IsKing reports whether defeating e counts towards victory.
func (e Enemy) IsKing() bool { return e.Card.IsKing() }

func (e Enemy) MarshalJSON() ([]byte, error) {
	cb, err := e.Card.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(cb, &m); err != nil {
		return nil, err
	}
	m["position"] = e.Position
	return json.Marshal(m)
}

func (e *Enemy) UnmarshalJSON(b []byte) error {
	var pos struct {
		Position int `json:"position"`
	}
	if err := json.Unmarshal(b, &pos); err != nil {
		return err
	}
	if err := e.Card.UnmarshalJSON(b); err != nil {
		return err
	}
	e.Position = pos.Position
	return nil
}

// EnemyRow wraps a pile of cards as positioned enemies.
func EnemyRow(cards []Card) []Enemy {
	out := make([]Enemy, len(cards))
	for i, c := range cards {
		out[i] = Enemy{Card: c, Position: i}
	}
	return out
}
