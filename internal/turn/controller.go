// Package turn drives one player's game: it owns the turn state machine,
// the attack being prepared and the discard that follows it, and talks to
// the server through a Collaborator.
package turn

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/enetx/fsm"

	"github.com/Rukaro/HeartBreaker/internal/constants"
	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/logging"
)

// Collaborator is the server side of a game. Errors are *game.RejectedError
// when the server declined and *game.TransportError when it could not be
// reached.
type Collaborator interface {
	NewGame(ctx context.Context) (game.Snapshot, error)
	State(ctx context.Context, gameID string) (game.Snapshot, error)
	CheckEnemy(ctx context.Context, gameID string, enemyIndex int) (game.Reachability, error)
	ValidateExpression(ctx context.Context, gameID string, enemyIndex int, expression string) (game.Validation, error)
	DefeatEnemy(ctx context.Context, gameID string, commit game.Commit) (game.Snapshot, error)
	Discard(ctx context.Context, gameID string, cardIndex int) (game.Snapshot, error)
	HandValues(ctx context.Context, gameID string) ([]game.HandValue, error)
}

// View renders controller state. Notices are informational only.
type View interface {
	Render(Status)
	Notice(msg string)
}

type nopView struct{}

func (nopView) Render(Status) {}
func (nopView) Notice(string) {}

// Status is a copy of everything a view needs to draw the turn.
type Status struct {
	State       fsm.State
	Session     *game.Snapshot
	Target      int
	TargetValue int
	Solution    *game.Reachability
	Validation  *game.Validation
	Expression  string
	HandValues  []game.HandValue
	Discardable []game.Slot
	Busy        bool
}

// Controller serializes player intents against the turn state machine.
// At most one server round-trip is outstanding; Cancel and CancelDiscard
// are accepted at any time.
type Controller struct {
	remote Collaborator
	view   View

	mu      sync.Mutex
	machine *fsm.FSM
	session *game.Snapshot
	attack  attackFlow
	busy    bool
	// epoch is bumped by Cancel so read answers that arrive later are dropped.
	epoch uint64
}

// NewController returns an idle controller with no session. view may be nil.
func NewController(remote Collaborator, view View) *Controller {
	if view == nil {
		view = nopView{}
	}
	c := &Controller{remote: remote, view: view, attack: newAttackFlow()}
	c.machine = newMachine(func(s fsm.State) {
		logging.Debug("turn state", logging.Fields{constants.LogFieldState: string(s)})
	})
	return c
}

// Status returns the current turn state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() Status {
	st := Status{
		State:       c.machine.Current(),
		Session:     c.session,
		Target:      c.attack.target,
		TargetValue: c.attack.targetValue,
		Solution:    c.attack.solution,
		Validation:  c.attack.validation,
		Expression:  c.attack.expression,
		HandValues:  c.attack.handValues,
		Busy:        c.busy,
	}
	if st.State == StateAwaitingDiscard && c.session != nil {
		st.Discardable = Discardable(c.session.Hand)
	}
	return st
}

func (c *Controller) trigger(ev fsm.Event) error {
	from := c.machine.Current()
	if err := c.machine.Trigger(ev); err != nil {
		return fmt.Errorf("%w: %s from %s", ErrIllegalTransition, ev, from)
	}
	return nil
}

func (c *Controller) in(states ...fsm.State) bool {
	cur := c.machine.Current()
	for _, s := range states {
		if cur == s {
			return true
		}
	}
	return false
}

// release clears the busy flag, captures the status and unlocks. The view
// is called after the lock is dropped.
func (c *Controller) release(notices ...string) {
	c.busy = false
	c.unlockAndRender(notices...)
}

func (c *Controller) unlockAndRender(notices ...string) {
	st := c.statusLocked()
	c.mu.Unlock()
	c.view.Render(st)
	for _, n := range notices {
		c.view.Notice(n)
	}
}

// applySnapshot replaces the session wholesale and moves a finished game
// to its terminal state. It reports whether the game is over.
func (c *Controller) applySnapshot(snap game.Snapshot) (bool, error) {
	if err := snap.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	c.session = &snap
	if !snap.IsGameOver {
		return false, nil
	}
	c.attack.reset()
	if IsTerminal(c.machine.Current()) {
		return true, nil
	}
	ev := EventDefeat
	if snap.IsVictory {
		ev = EventVictory
	}
	if err := c.trigger(ev); err != nil {
		return true, err
	}
	logging.Info("game over", logging.Fields{
		constants.LogFieldGameID:  snap.GameID,
		constants.LogFieldVictory: snap.IsVictory,
		constants.LogFieldKings:   snap.KingsDefeated,
	})
	return true, nil
}

// NewGame starts a fresh session, discarding whatever was in progress.
func (c *Controller) NewGame(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	snap, err := c.remote.NewGame(ctx)

	c.mu.Lock()
	if err != nil {
		c.release()
		return err
	}
	if err := snap.Validate(); err != nil {
		c.release()
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	c.attack.reset()
	c.epoch++
	if err := c.trigger(EventNewGame); err != nil {
		c.release()
		return err
	}
	_, err = c.applySnapshot(snap)
	c.release()
	return err
}

// Refresh reloads the session from the server. A target that no longer
// exists is dropped; one whose value changed goes back to method choice.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.session == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	id := c.session.GameID
	c.busy = true
	c.mu.Unlock()

	snap, err := c.remote.State(ctx, id)

	c.mu.Lock()
	if err != nil {
		c.release()
		return err
	}
	over, err := c.applySnapshot(snap)
	if err != nil || over {
		c.release()
		return err
	}
	var notices []string
	if c.attack.hasTarget() {
		if c.attack.target >= len(snap.Enemies) {
			c.attack.reset()
			if err := c.trigger(EventTargetLost); err != nil {
				c.release()
				return err
			}
			notices = append(notices, "the selected enemy is gone")
		} else if v := snap.EnemyValues[c.attack.target]; v != c.attack.targetValue {
			c.attack.targetValue = v
			c.attack.solution, c.attack.validation, c.attack.expression = nil, nil, ""
			c.attack.handValues = nil
			if !c.in(StateTargetChosen) {
				if err := c.trigger(EventTargetChanged); err != nil {
					c.release()
					return err
				}
			}
			notices = append(notices, "the selected enemy changed value, choose a method again")
		}
	}
	if c.in(StateAwaitingDiscard) && len(Discardable(snap.Hand)) == 0 {
		if err := c.trigger(EventDiscardSkipped); err != nil {
			c.release()
			return err
		}
	}
	c.release(notices...)
	return nil
}

// SelectTarget picks the enemy to attack.
func (c *Controller) SelectTarget(i int) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.session == nil {
		c.mu.Unlock()
		return ErrNoSession
	}
	if c.session.IsGameOver {
		c.mu.Unlock()
		return ErrGameOver
	}
	if !c.in(StateIdle) {
		c.mu.Unlock()
		return fmt.Errorf("%w: select target from %s", ErrIllegalTransition, c.machine.Current())
	}
	if i < 0 || i >= len(c.session.Enemies) {
		c.mu.Unlock()
		return ErrTargetOutOfRange
	}
	c.attack.reset()
	c.attack.target = i
	c.attack.targetValue = c.session.EnemyValues[i]
	if err := c.trigger(EventSelect); err != nil {
		c.attack.reset()
		c.mu.Unlock()
		return err
	}
	c.unlockAndRender()
	return nil
}

// ChooseAuto asks the server for a solution to the selected target.
func (c *Controller) ChooseAuto(ctx context.Context) error { return c.choose(ctx, false) }

// ChooseManual checks the target is reachable and then waits for the
// player's own expression. Hand values are fetched as a hint.
func (c *Controller) ChooseManual(ctx context.Context) error { return c.choose(ctx, true) }

func (c *Controller) choose(ctx context.Context, manual bool) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.in(StateTargetChosen) {
		c.mu.Unlock()
		return fmt.Errorf("%w: choose method from %s", ErrIllegalTransition, c.machine.Current())
	}
	ev := EventChooseAuto
	if manual {
		ev = EventChooseManual
	}
	if err := c.trigger(ev); err != nil {
		c.mu.Unlock()
		return err
	}
	id, target, epoch := c.session.GameID, c.attack.target, c.epoch
	c.busy = true
	c.unlockAndRender()

	r, err := c.remote.CheckEnemy(ctx, id, target)
	var hv []game.HandValue
	var hvErr error
	if manual && err == nil && r.CanDefeat {
		hv, hvErr = c.remote.HandValues(ctx, id)
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.release()
		return ErrSuperseded
	}
	if err != nil {
		if terr := c.trigger(EventCheckFailed); terr != nil {
			c.release()
			return terr
		}
		c.release()
		return err
	}
	if !r.CanDefeat {
		c.attack.reset()
		if err := c.trigger(EventUnsolvable); err != nil {
			c.release()
			return err
		}
		c.release("this enemy cannot be defeated with the current hand")
		return ErrUnsolvable
	}
	if r.TargetValue != 0 {
		c.attack.targetValue = r.TargetValue
	}
	var notices []string
	if manual {
		c.attack.handValues = hv
		if hvErr != nil {
			notices = append(notices, "hand values unavailable: "+hvErr.Error())
		}
		err = c.trigger(EventReachable)
	} else {
		sol := r
		c.attack.solution = &sol
		err = c.trigger(EventSolved)
	}
	c.release(notices...)
	return err
}

// SubmitExpression validates the player's expression for the selected
// target. It never changes the session and may be repeated.
func (c *Controller) SubmitExpression(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.in(StateAwaitingExpression, StateExpressionValidated) {
		c.mu.Unlock()
		return fmt.Errorf("%w: submit expression from %s", ErrIllegalTransition, c.machine.Current())
	}
	if text == "" {
		c.mu.Unlock()
		return ErrEmptyExpression
	}
	id, target, epoch := c.session.GameID, c.attack.target, c.epoch
	c.busy = true
	c.mu.Unlock()

	v, err := c.remote.ValidateExpression(ctx, id, target, text)

	c.mu.Lock()
	if c.epoch != epoch {
		c.release()
		return ErrSuperseded
	}
	if err != nil {
		c.release()
		return err
	}
	c.attack.validation = &v
	if v.TargetValue != nil {
		c.attack.targetValue = *v.TargetValue
	}
	if !v.Valid {
		c.attack.expression = ""
		if err := c.trigger(EventInvalid); err != nil {
			c.release()
			return err
		}
		c.release()
		return fmt.Errorf("%w: %s", ErrInvalidExpression, v.Error)
	}
	c.attack.expression = text
	err = c.trigger(EventValidated)
	c.release()
	return err
}

// CommitAttack defeats the selected target, with the shown solution or the
// validated expression. The answer is applied even if the turn was
// cancelled meanwhile, since the server has already moved on.
func (c *Controller) CommitAttack(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.in(StateSolutionShown, StateExpressionValidated) {
		c.mu.Unlock()
		return fmt.Errorf("%w: commit attack from %s", ErrIllegalTransition, c.machine.Current())
	}
	id, commit := c.session.GameID, c.attack.commit()
	c.busy = true
	c.mu.Unlock()

	snap, err := c.remote.DefeatEnemy(ctx, id, commit)

	c.mu.Lock()
	if err != nil {
		c.release()
		return err
	}
	over, err := c.applySnapshot(snap)
	if err != nil {
		// The target and its solution stay so the commit can be retried.
		c.release()
		return err
	}
	c.attack.reset()
	if over {
		c.release()
		return nil
	}
	if len(Discardable(snap.Hand)) == 0 {
		err = c.trigger(EventDiscardSkipped)
		c.release("no card can be discarded, turn skipped")
		return err
	}
	err = c.trigger(EventAttackResolved)
	c.release()
	return err
}

// Discard throws away hand card i after an attack.
func (c *Controller) Discard(ctx context.Context, i int) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	if !c.in(StateAwaitingDiscard) {
		c.mu.Unlock()
		return fmt.Errorf("%w: discard from %s", ErrIllegalTransition, c.machine.Current())
	}
	if err := checkDiscard(c.session.Hand, i); err != nil {
		c.mu.Unlock()
		return err
	}
	id := c.session.GameID
	c.busy = true
	c.mu.Unlock()

	snap, err := c.remote.Discard(ctx, id, i)

	c.mu.Lock()
	if err != nil {
		c.release()
		return err
	}
	over, err := c.applySnapshot(snap)
	if err != nil || over {
		c.release()
		return err
	}
	if c.in(StateAwaitingDiscard) {
		err = c.trigger(EventDiscarded)
	}
	c.release()
	return err
}

// CancelDiscard leaves the discard step without discarding.
func (c *Controller) CancelDiscard() error {
	c.mu.Lock()
	if !c.in(StateAwaitingDiscard) {
		c.mu.Unlock()
		return fmt.Errorf("%w: cancel discard from %s", ErrIllegalTransition, c.machine.Current())
	}
	if err := c.trigger(EventSkipDiscard); err != nil {
		c.mu.Unlock()
		return err
	}
	c.unlockAndRender()
	return nil
}

// Cancel abandons the current attack and returns to Idle. It is purely
// local and is accepted while a request is outstanding.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	if c.in(StateIdle) || IsTerminal(c.machine.Current()) {
		c.mu.Unlock()
		return fmt.Errorf("%w: cancel from %s", ErrIllegalTransition, c.machine.Current())
	}
	c.epoch++
	c.attack.reset()
	if err := c.trigger(EventCancel); err != nil {
		c.mu.Unlock()
		return err
	}
	c.unlockAndRender()
	return nil
}
