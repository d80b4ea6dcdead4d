package turn

import "github.com/Rukaro/HeartBreaker/internal/game"

// attackFlow holds everything about the attack being prepared. It lives
// from target selection until the commit lands or the turn is cancelled.
type attackFlow struct {
	target      int
	targetValue int
	solution    *game.Reachability
	validation  *game.Validation
	expression  string
	handValues  []game.HandValue
}

func newAttackFlow() attackFlow { return attackFlow{target: -1} }

func (a *attackFlow) reset() { *a = newAttackFlow() }

func (a *attackFlow) hasTarget() bool { return a.target >= 0 }

// commit builds the attack request: manual when an expression was
// validated, automatic otherwise.
func (a *attackFlow) commit() game.Commit {
	if a.validation != nil && a.validation.Valid && a.expression != "" {
		return game.Commit{EnemyIndex: a.target, SkipValidation: true, Expression: a.expression}
	}
	return game.Commit{EnemyIndex: a.target}
}
