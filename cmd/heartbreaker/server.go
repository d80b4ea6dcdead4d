package main

import (
	"context"
	"time"

	"github.com/Rukaro/HeartBreaker/internal/logging"
	"github.com/Rukaro/HeartBreaker/internal/service"
	"github.com/Rukaro/HeartBreaker/internal/storage"
)

// startIdleSweeper periodically deletes games nobody touched within ttl.
// It stops when ctx is cancelled.
func startIdleSweeper(ctx context.Context, repo storage.Repository, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if _, err := service.SweepIdleGames(repo, ttl, now); err != nil {
					logging.Error("idle sweeper failed", err, nil)
				}
			}
		}
	}()
}
