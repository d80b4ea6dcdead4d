package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/dedupe"
	"github.com/Rukaro/HeartBreaker/internal/engine"
	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/keys"
	"github.com/Rukaro/HeartBreaker/internal/logging"
)

var (
	ErrCannotDefeat       = errors.New("enemy cannot be defeated with the current hand")
	ErrMissingExpression  = errors.New("expression is required when skipping validation")
	ErrExpressionRejected = errors.New("expression rejected")
	ErrSolveAborted       = engine.ErrSearchAborted
)

type solveResult struct {
	solution engine.Solution
	ok       bool
}

// solve runs the search once per distinct hand and target, concurrent
// callers for the same key share the result. The search runs under the
// context of the caller that started it.
func solve(ctx context.Context, hand []game.Card, target int) (engine.Solution, bool, error) {
	v, err, _ := dedupe.SolveGroup.Do(keys.SolveKey(hand, target), func() (interface{}, error) {
		s, ok, err := engine.Solve(ctx, hand, target)
		return solveResult{solution: s, ok: ok}, err
	})
	if err != nil {
		return engine.Solution{}, false, err
	}
	r := v.(solveResult)
	return r.solution, r.ok, nil
}

// CheckEnemy reports whether the enemy at enemyIndex can be defeated with
// the current hand and, if so, a witness expression.
func CheckEnemy(ctx context.Context, repo GameRepo, gameID string, enemyIndex int) (game.Reachability, error) {
	rec, err := loadGame(repo, gameID)
	if err != nil {
		return game.Reachability{}, err
	}
	target, err := engine.TargetValue(rec, enemyIndex)
	if err != nil {
		return game.Reachability{}, err
	}
	s, ok, err := solve(ctx, rec.Hand, target)
	if err != nil {
		logging.Warn("solver aborted", err, logging.Fields{constants.LogFieldGameID: gameID, constants.LogFieldEnemyIndex: enemyIndex})
		return game.Reachability{}, err
	}
	if !ok {
		return game.Reachability{CanDefeat: false, TargetValue: target}, nil
	}
	return game.Reachability{CanDefeat: true, TargetValue: target, Expression: s.Expression, Result: s.Result}, nil
}

// ValidateExpression checks a player's expression against the enemy at
// enemyIndex. It never changes the game.
func ValidateExpression(repo GameRepo, gameID string, enemyIndex int, expression string) (game.Validation, error) {
	rec, err := loadGame(repo, gameID)
	if err != nil {
		return game.Validation{}, err
	}
	target, err := engine.TargetValue(rec, enemyIndex)
	if err != nil {
		return game.Validation{}, err
	}
	return engine.ValidateExpression(rec.Hand, target, expression), nil
}

// DefeatEnemy commits an attack. In automatic mode the server proves the
// attack itself; with SkipValidation the supplied expression is checked
// instead. The updated snapshot is returned.
func DefeatEnemy(ctx context.Context, repo GameRepo, rules engine.Rules, gameID string, c game.Commit) (game.Snapshot, error) {
	rec, err := loadGame(repo, gameID)
	if err != nil {
		return game.Snapshot{}, err
	}
	if rec.IsGameOver {
		return game.Snapshot{}, ErrGameOver
	}
	target, err := engine.TargetValue(rec, c.EnemyIndex)
	if err != nil {
		return game.Snapshot{}, err
	}

	mode := "auto"
	if c.SkipValidation {
		mode = "manual"
		if strings.TrimSpace(c.Expression) == "" {
			return game.Snapshot{}, ErrMissingExpression
		}
		if v := engine.ValidateExpression(rec.Hand, target, c.Expression); !v.Valid {
			return game.Snapshot{}, fmt.Errorf("%w: %s", ErrExpressionRejected, v.Error)
		}
	} else {
		_, ok, err := solve(ctx, rec.Hand, target)
		if err != nil {
			logging.Warn("solver aborted", err, logging.Fields{constants.LogFieldGameID: gameID, constants.LogFieldEnemyIndex: c.EnemyIndex})
			return game.Snapshot{}, err
		}
		if !ok {
			return game.Snapshot{}, ErrCannotDefeat
		}
	}

	defeated, err := engine.DefeatEnemy(rec, c.EnemyIndex, rules)
	if err != nil {
		return game.Snapshot{}, err
	}
	if err := repo.UpdateGame(rec); err != nil {
		return game.Snapshot{}, err
	}
	logging.Info("enemy defeated", logging.Fields{
		constants.LogFieldGameID:     rec.ID,
		constants.LogFieldEnemyIndex: c.EnemyIndex,
		constants.LogFieldCard:       defeated.Display(),
		constants.LogFieldMode:       mode,
		constants.LogFieldKings:      rec.KingsDefeated,
	})
	if rec.IsGameOver {
		logging.Info("game finished", logging.Fields{constants.LogFieldGameID: rec.ID, constants.LogFieldVictory: rec.IsVictory})
	}
	return snapshotOf(rec), nil
}
