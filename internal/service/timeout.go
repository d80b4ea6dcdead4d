package service

import (
	"time"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/logging"
)

// SweepIdleGames deletes every game that has not been touched within ttl
// of now. It returns the number of games removed.
func SweepIdleGames(repo interface {
	DeleteGamesIdleSince(cutoff time.Time) (int64, error)
}, ttl time.Duration, now time.Time) (int64, error) {
	n, err := repo.DeleteGamesIdleSince(now.Add(-ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logging.Info("idle games removed", logging.Fields{constants.LogFieldCount: n})
	}
	return n, nil
}
