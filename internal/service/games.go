package service

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/engine"
	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/logging"
	"github.com/Rukaro/HeartBreaker/internal/storage"
)

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameOver           = engine.ErrGameOver
	ErrInvalidEnemyIndex  = engine.ErrInvalidEnemyIndex
	ErrInvalidCardIndex   = engine.ErrInvalidCardIndex
	ErrSpadeKingProtected = engine.ErrSpadeKingProtected
	ErrStaleGame          = storage.ErrStaleGame
)

// GameRepo is the minimal repository interface the game services need.
// Using a small interface simplifies testing.
type GameRepo interface {
	CreateGame(g *game.Record) error
	GetGameByID(id string) (*game.Record, error)
	UpdateGame(g *game.Record) error
}

// NewGame deals a fresh game, stores it and returns its snapshot.
func NewGame(repo GameRepo, rng *rand.Rand, rules engine.Rules) (game.Snapshot, error) {
	rec := &game.Record{ID: uuid.NewString()}
	engine.Deal(rec, rng, rules)
	if err := repo.CreateGame(rec); err != nil {
		return game.Snapshot{}, err
	}
	logging.Info("game created", logging.Fields{constants.LogFieldGameID: rec.ID})
	return snapshotOf(rec), nil
}

// GetState returns the current snapshot of a game.
func GetState(repo GameRepo, gameID string) (game.Snapshot, error) {
	rec, err := loadGame(repo, gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return snapshotOf(rec), nil
}

// HandValues returns every hand card paired with its numeric value.
func HandValues(repo GameRepo, gameID string) ([]game.HandValue, error) {
	rec, err := loadGame(repo, gameID)
	if err != nil {
		return nil, err
	}
	return engine.HandValues(rec.Hand), nil
}

func loadGame(repo GameRepo, gameID string) (*game.Record, error) {
	rec, err := repo.GetGameByID(gameID)
	if err != nil {
		if errors.Is(err, storage.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if rec == nil {
		return nil, ErrGameNotFound
	}
	return rec, nil
}

func snapshotOf(rec *game.Record) game.Snapshot {
	return rec.Snapshot(engine.EnemyValues(rec.Enemies))
}
