package storage

import (
	"errors"
	"time"

	"github.com/Rukaro/HeartBreaker/internal/game"
)

var (
	ErrGameNotFound = errors.New("game not found")
	// ErrStaleGame is returned by UpdateGame when the record changed since
	// it was read.
	ErrStaleGame = errors.New("game was modified concurrently")
)

type Repository interface {
	CreateGame(g *game.Record) error
	GetGameByID(id string) (*game.Record, error)
	// UpdateGame persists g if its Version still matches the stored row and
	// bumps Version on success.
	UpdateGame(g *game.Record) error
	// DeleteGamesIdleSince removes games not updated after cutoff and
	// returns how many were removed.
	DeleteGamesIdleSince(cutoff time.Time) (int64, error)
}
