package game

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// KingsToWin is the number of royal enemies that must fall for a victory.
const KingsToWin = 3

// Snapshot is the complete session state returned by the server after
// every action. Clients replace their copy wholesale and never patch it.
type Snapshot struct {
	GameID        string  `json:"game_id,omitempty"`
	Hand          []Card  `json:"hand"`
	Enemies       []Enemy `json:"enemies"`
	EnemyValues   []int   `json:"enemy_values"`
	KingsDefeated int     `json:"kings_defeated"`
	DeckSize      int     `json:"deck_size"`
	IsGameOver    bool    `json:"is_game_over"`
	IsVictory     bool    `json:"is_victory"`
}

var (
	ErrEnemyValuesMismatch = errors.New("enemies and enemy_values differ in length")
	ErrKingsOutOfRange     = errors.New("kings_defeated out of range")
	ErrVictoryInconsistent = errors.New("victory flags inconsistent with kings_defeated")
)

// Validate checks the invariants every snapshot must satisfy.
func (s *Snapshot) Validate() error {
	if len(s.Enemies) != len(s.EnemyValues) {
		return fmt.Errorf("%w: %d enemies, %d values", ErrEnemyValuesMismatch, len(s.Enemies), len(s.EnemyValues))
	}
	if s.KingsDefeated < 0 || s.KingsDefeated > KingsToWin {
		return fmt.Errorf("%w: %d", ErrKingsOutOfRange, s.KingsDefeated)
	}
	if (s.KingsDefeated == KingsToWin) != s.IsVictory {
		return ErrVictoryInconsistent
	}
	if s.IsVictory && !s.IsGameOver {
		return ErrVictoryInconsistent
	}
	return nil
}

// IsDefeat reports a finished game that was not won.
func (s *Snapshot) IsDefeat() bool { return s.IsGameOver && !s.IsVictory }

// Reindex sets every enemy position to its index in the row.
func (s *Snapshot) Reindex() {
	for i := range s.Enemies {
		s.Enemies[i].Position = i
	}
}

// Reachability is the answer to "can this enemy be defeated with the
// current hand". Expression is a witness when CanDefeat is true.
type Reachability struct {
	CanDefeat   bool    `json:"can_defeat"`
	TargetValue int     `json:"target_value,omitempty"`
	Expression  string  `json:"expression,omitempty"`
	Result      float64 `json:"result,omitempty"`
}

// Validation is the outcome of checking a user supplied expression.
// Valid=false is a normal answer, not a failure.
type Validation struct {
	Valid       bool     `json:"valid"`
	Result      *float64 `json:"result,omitempty"`
	TargetValue *int     `json:"target_value,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Commit is the single mutating attack call. Exactly one mode is used:
// automatic (server re-solves) or manual (Expression with SkipValidation).
type Commit struct {
	EnemyIndex     int    `json:"enemy_index"`
	SkipValidation bool   `json:"skip_validation,omitempty"`
	Expression     string `json:"expression,omitempty"`
}

// HandValue pairs a hand card with its numeric value in hand context.
type HandValue struct {
	Card         Card `json:"card"`
	NumericValue int  `json:"numeric_value"`
}

// Slot is a card together with its index in the current hand.
type Slot struct {
	Index int
	Card  Card
}

// Pile is an ordered list of cards persisted as a JSON column.
type Pile []Card

func (p Pile) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Card(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Pile) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*p = Pile{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("pile: unsupported column type %T", src)
	}
	var cards []Card
	if err := json.Unmarshal(b, &cards); err != nil {
		return err
	}
	*p = cards
	return nil
}

// Record is the persisted, server-authoritative game. Version is bumped on
// every successful write and used for optimistic concurrency.
type Record struct {
	ID            string    `gorm:"primaryKey;size:36"`
	CreatedAt     time.Time
	UpdatedAt     time.Time `gorm:"index"`
	Deck          Pile      `gorm:"type:text"`
	Hand          Pile      `gorm:"type:text"`
	Enemies       Pile      `gorm:"type:text"`
	KingsDefeated int
	IsGameOver    bool
	IsVictory     bool
	Version       int
}

// TableName keeps the table name stable across struct renames.
func (Record) TableName() string { return "game_sessions" }

// Snapshot converts the record to its wire form. enemyValues must be
// computed by the rules engine for the current enemy row.
func (r *Record) Snapshot(enemyValues []int) Snapshot {
	return Snapshot{
		GameID:        r.ID,
		Hand:          append([]Card(nil), r.Hand...),
		Enemies:       EnemyRow(r.Enemies),
		EnemyValues:   enemyValues,
		KingsDefeated: r.KingsDefeated,
		DeckSize:      len(r.Deck),
		IsGameOver:    r.IsGameOver,
		IsVictory:     r.IsVictory,
	}
}
