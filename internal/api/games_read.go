package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/service"
)

type CheckRequest struct {
	EnemyIndex *int `json:"enemy_index" binding:"required"`
}

type ValidateRequest struct {
	EnemyIndex *int   `json:"enemy_index" binding:"required"`
	Expression string `json:"expression"`
}

// GetState returns the current snapshot of a game.
func (h *GameHandler) GetState(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	snap, err := service.GetState(h.repo, id)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchGame)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// CheckEnemy answers whether an enemy is reachable with the current hand.
func (h *GameHandler) CheckEnemy(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	ctx, cancel := h.solveContext(c)
	defer cancel()
	r, err := service.CheckEnemy(ctx, h.repo, id, *req.EnemyIndex)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedCheckEnemy)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ValidateExpression checks a player expression. valid=false is a normal
// 200 answer.
func (h *GameHandler) ValidateExpression(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	v, err := service.ValidateExpression(h.repo, id, *req.EnemyIndex, req.Expression)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedValidateExpr)
		return
	}
	c.JSON(http.StatusOK, v)
}

// HandValues lists the hand with numeric values.
func (h *GameHandler) HandValues(c *gin.Context) {
	id, ok := gameIDParam(c)
	if !ok {
		return
	}
	hv, err := service.HandValues(h.repo, id)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchHandValues)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyHandValues: hv})
}

// Health reports that the process is serving requests.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: constants.StatusOK})
}
