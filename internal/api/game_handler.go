package api

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rukaro/HeartBreaker/internal/engine"
	"github.com/Rukaro/HeartBreaker/internal/storage"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	repo         storage.Repository
	rules        engine.Rules
	solveTimeout time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGameHandler creates a new GameHandler with the given repository and
// table rules. Solver searches are cut off after solveTimeout; zero leaves
// them bound to the request only.
func NewGameHandler(repo storage.Repository, rules engine.Rules, solveTimeout time.Duration) *GameHandler {
	return &GameHandler{
		repo:         repo,
		rules:        rules,
		solveTimeout: solveTimeout,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// solveContext bounds a solver search by the request and the solve timeout.
func (h *GameHandler) solveContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.solveTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.solveTimeout)
}

// shuffler returns a generator for one deal. *rand.Rand is not safe for
// concurrent use, so every deal gets its own seeded from the shared one.
func (h *GameHandler) shuffler() *rand.Rand {
	h.rngMu.Lock()
	seed := h.rng.Int63()
	h.rngMu.Unlock()
	return rand.New(rand.NewSource(seed))
}
