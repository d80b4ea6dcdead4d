package storage

import (
	"errors"
	"time"

	"github.com/Rukaro/HeartBreaker/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateGame(g *game.Record) error {
	g.Version = 1
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id string) (*game.Record, error) {
	var g game.Record
	if err := r.db.Where("id = ?", id).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) UpdateGame(g *game.Record) error {
	now := time.Now()
	res := r.db.Model(&game.Record{}).
		Where("id = ? AND version = ?", g.ID, g.Version).
		Updates(map[string]interface{}{
			"deck":           g.Deck,
			"hand":           g.Hand,
			"enemies":        g.Enemies,
			"kings_defeated": g.KingsDefeated,
			"is_game_over":   g.IsGameOver,
			"is_victory":     g.IsVictory,
			"version":        g.Version + 1,
			"updated_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleGame
	}
	g.Version++
	g.UpdatedAt = now
	return nil
}

func (r *sqliteRepository) DeleteGamesIdleSince(cutoff time.Time) (int64, error) {
	res := r.db.Where("updated_at < ?", cutoff).Delete(&game.Record{})
	return res.RowsAffected, res.Error
}
