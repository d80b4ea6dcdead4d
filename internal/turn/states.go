package turn

import "github.com/enetx/fsm"

const (
	StateIdle                fsm.State = "Idle"
	StateTargetChosen        fsm.State = "TargetChosen"
	StateMethodAuto          fsm.State = "MethodChoice(Auto)"
	StateMethodManual        fsm.State = "MethodChoice(Manual)"
	StateSolutionShown       fsm.State = "SolutionShown"
	StateAwaitingExpression  fsm.State = "AwaitingExpression"
	StateExpressionValidated fsm.State = "ExpressionValidated"
	StateAwaitingDiscard     fsm.State = "AwaitingDiscard"
	StateVictory             fsm.State = "GameOver(Victory)"
	StateDefeat              fsm.State = "GameOver(Defeat)"
)

const (
	EventNewGame        fsm.Event = "NewGame"
	EventSelect         fsm.Event = "Select"
	EventChooseAuto     fsm.Event = "ChooseAuto"
	EventChooseManual   fsm.Event = "ChooseManual"
	EventSolved         fsm.Event = "Solved"
	EventReachable      fsm.Event = "Reachable"
	EventUnsolvable     fsm.Event = "Unsolvable"
	EventCheckFailed    fsm.Event = "CheckFailed"
	EventValidated      fsm.Event = "Validated"
	EventInvalid        fsm.Event = "Invalid"
	EventAttackResolved fsm.Event = "AttackResolved"
	EventDiscardSkipped fsm.Event = "DiscardSkipped"
	EventDiscarded      fsm.Event = "Discarded"
	EventSkipDiscard    fsm.Event = "SkipDiscard"
	EventTargetLost     fsm.Event = "TargetLost"
	EventTargetChanged  fsm.Event = "TargetChanged"
	EventCancel         fsm.Event = "Cancel"
	EventVictory        fsm.Event = "Victory"
	EventDefeat         fsm.Event = "Defeat"
)

// activeStates are every state of a running game.
var activeStates = []fsm.State{
	StateIdle,
	StateTargetChosen,
	StateMethodAuto,
	StateMethodManual,
	StateSolutionShown,
	StateAwaitingExpression,
	StateExpressionValidated,
	StateAwaitingDiscard,
}

// IsTerminal reports whether s ends the game.
func IsTerminal(s fsm.State) bool { return s == StateVictory || s == StateDefeat }

// newMachine declares the turn transition table. onEnter is called after
// every state change.
func newMachine(onEnter func(fsm.State)) *fsm.FSM {
	m := fsm.New(StateIdle).
		Transition(StateIdle, EventSelect, StateTargetChosen).
		Transition(StateTargetChosen, EventChooseAuto, StateMethodAuto).
		Transition(StateTargetChosen, EventChooseManual, StateMethodManual).
		Transition(StateMethodAuto, EventSolved, StateSolutionShown).
		Transition(StateMethodManual, EventReachable, StateAwaitingExpression).
		Transition(StateMethodAuto, EventUnsolvable, StateIdle).
		Transition(StateMethodManual, EventUnsolvable, StateIdle).
		Transition(StateMethodAuto, EventCheckFailed, StateTargetChosen).
		Transition(StateMethodManual, EventCheckFailed, StateTargetChosen).
		Transition(StateAwaitingExpression, EventValidated, StateExpressionValidated).
		Transition(StateExpressionValidated, EventValidated, StateExpressionValidated).
		Transition(StateAwaitingExpression, EventInvalid, StateAwaitingExpression).
		Transition(StateExpressionValidated, EventInvalid, StateAwaitingExpression).
		// A commit answered after Cancel still lands, so Idle resolves attacks too.
		Transition(StateSolutionShown, EventAttackResolved, StateAwaitingDiscard).
		Transition(StateExpressionValidated, EventAttackResolved, StateAwaitingDiscard).
		Transition(StateIdle, EventAttackResolved, StateAwaitingDiscard).
		Transition(StateSolutionShown, EventDiscardSkipped, StateIdle).
		Transition(StateExpressionValidated, EventDiscardSkipped, StateIdle).
		Transition(StateIdle, EventDiscardSkipped, StateIdle).
		Transition(StateAwaitingDiscard, EventDiscardSkipped, StateIdle).
		Transition(StateAwaitingDiscard, EventDiscarded, StateIdle).
		Transition(StateAwaitingDiscard, EventSkipDiscard, StateIdle)

	for _, s := range activeStates {
		if s != StateIdle {
			m.Transition(s, EventCancel, StateIdle)
		}
		m.Transition(s, EventVictory, StateVictory)
		m.Transition(s, EventDefeat, StateDefeat)
		m.Transition(s, EventNewGame, StateIdle)
	}
	for _, s := range []fsm.State{StateTargetChosen, StateSolutionShown, StateAwaitingExpression, StateExpressionValidated} {
		m.Transition(s, EventTargetLost, StateIdle)
	}
	for _, s := range []fsm.State{StateSolutionShown, StateAwaitingExpression, StateExpressionValidated} {
		m.Transition(s, EventTargetChanged, StateTargetChosen)
	}
	m.Transition(StateVictory, EventNewGame, StateIdle)
	m.Transition(StateDefeat, EventNewGame, StateIdle)

	for _, s := range append(append([]fsm.State(nil), activeStates...), StateVictory, StateDefeat) {
		s := s
		m.OnEnter(s, func(*fsm.Context) error {
			onEnter(s)
			return nil
		})
	}
	return m
}
