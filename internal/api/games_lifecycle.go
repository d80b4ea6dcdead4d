package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/service"
)

type DefeatRequest struct {
	EnemyIndex     *int   `json:"enemy_index" binding:"required"`
	SkipValidation bool   `json:"skip_validation"`
	Expression     string `json:"expression"`
}

type DiscardRequest struct {
	CardIndex *int `json:"card_index" binding:"required"`
}

// NewGame deals a fresh game and returns its snapshot.
func (h *GameHandler) NewGame(c *gin.Context) {
	snap, err := service.NewGame(h.repo, h.shuffler(), h.rules)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedCreateGame)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// DefeatEnemy commits an attack on one enemy.
func (h *GameHandler) DefeatEnemy(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	var req DefeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	ctx, cancel := h.solveContext(c)
	defer cancel()
	snap, err := service.DefeatEnemy(ctx, h.repo, h.rules, id, game.Commit{
		EnemyIndex:     *req.EnemyIndex,
		SkipValidation: req.SkipValidation,
		Expression:     req.Expression,
	})
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateGame)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Discard removes one card from the hand.
func (h *GameHandler) Discard(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	var req DiscardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	snap, err := service.Discard(h.repo, id, *req.CardIndex)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateGame)
		return
	}
	c.JSON(http.StatusOK, snap)
}
