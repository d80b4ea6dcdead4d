package service

import (
	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/engine"
	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/logging"
)

// Discard removes the hand card at cardIndex. The spade king cannot be
// discarded.
func Discard(repo GameRepo, gameID string, cardIndex int) (game.Snapshot, error) {
	rec, err := loadGame(repo, gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	c, err := engine.Discard(rec, cardIndex)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := repo.UpdateGame(rec); err != nil {
		return game.Snapshot{}, err
	}
	logging.Info("card discarded", logging.Fields{
		constants.LogFieldGameID:    rec.ID,
		constants.LogFieldCardIndex: cardIndex,
		constants.LogFieldCard:      c.Display(),
	})
	return snapshotOf(rec), nil
}
