package turn

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/enetx/fsm"

	"github.com/Rukaro/HeartBreaker/internal/game"
)

var (
	spadeKing = game.NewCard(game.SuitSpade, game.RankKing)
	seven     = game.NewCard(game.SuitDiamond, 7)
	three     = game.NewCard(game.SuitClub, 3)
	heartKing = game.NewCard(game.SuitHeart, game.RankKing)
)

// fakeRemote is a scripted Collaborator. When gate is set every call
// announces itself on started and waits until gate is closed.
type fakeRemote struct {
	mu    sync.Mutex
	calls map[string]int

	newGame     game.Snapshot
	state       game.Snapshot
	stateErr    error
	reach       game.Reachability
	reachErr    error
	validation  game.Validation
	validateErr error
	defeat      game.Snapshot
	defeatErr   error
	discard     game.Snapshot
	discardErr  error
	handValues  []game.HandValue
	hvErr       error

	lastCommit game.Commit

	gate    chan struct{}
	started chan string
}

func newFake() *fakeRemote { return &fakeRemote{calls: map[string]int{}} }

func (f *fakeRemote) enter(name string) {
	f.mu.Lock()
	f.calls[name]++
	gate, started := f.gate, f.started
	f.mu.Unlock()
	if gate != nil {
		started <- name
		<-gate
	}
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.calls {
		n += v
	}
	return n
}

func (f *fakeRemote) hold() {
	f.mu.Lock()
	f.gate = make(chan struct{})
	f.started = make(chan string, 1)
	f.mu.Unlock()
}

func (f *fakeRemote) NewGame(ctx context.Context) (game.Snapshot, error) {
	f.enter("new")
	return f.newGame, nil
}

func (f *fakeRemote) State(ctx context.Context, gameID string) (game.Snapshot, error) {
	f.enter("state")
	return f.state, f.stateErr
}

func (f *fakeRemote) CheckEnemy(ctx context.Context, gameID string, enemyIndex int) (game.Reachability, error) {
	f.enter("check")
	return f.reach, f.reachErr
}

func (f *fakeRemote) ValidateExpression(ctx context.Context, gameID string, enemyIndex int, expression string) (game.Validation, error) {
	f.enter("validate")
	return f.validation, f.validateErr
}

func (f *fakeRemote) DefeatEnemy(ctx context.Context, gameID string, commit game.Commit) (game.Snapshot, error) {
	f.mu.Lock()
	f.lastCommit = commit
	f.mu.Unlock()
	f.enter("defeat")
	return f.defeat, f.defeatErr
}

func (f *fakeRemote) Discard(ctx context.Context, gameID string, cardIndex int) (game.Snapshot, error) {
	f.enter("discard")
	return f.discard, f.discardErr
}

func (f *fakeRemote) HandValues(ctx context.Context, gameID string) ([]game.HandValue, error) {
	f.enter("hand-values")
	return f.handValues, f.hvErr
}

type recordingView struct {
	mu      sync.Mutex
	renders int
	notices []string
}

func (v *recordingView) Render(Status) {
	v.mu.Lock()
	v.renders++
	v.mu.Unlock()
}

func (v *recordingView) Notice(msg string) {
	v.mu.Lock()
	v.notices = append(v.notices, msg)
	v.mu.Unlock()
}

// table builds a consistent snapshot with the given enemy values.
func table(hand []game.Card, enemies []game.Card, values []int, kings int) game.Snapshot {
	s := game.Snapshot{
		GameID:        "g1",
		Hand:          hand,
		Enemies:       game.EnemyRow(enemies),
		EnemyValues:   values,
		KingsDefeated: kings,
		DeckSize:      10,
	}
	if kings == game.KingsToWin {
		s.IsVictory, s.IsGameOver = true, true
	}
	return s
}

func started(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.NewGame(context.Background()); err != nil {
		t.Fatalf("new game: %v", err)
	}
	if st := c.Status().State; st != StateIdle {
		t.Fatalf("expected Idle after new game, got %s", st)
	}
}

func expectState(t *testing.T, c *Controller, want fsm.State) {
	t.Helper()
	if got := c.Status().State; got != want {
		t.Fatalf("expected state %s, got %s", want, got)
	}
}

func TestScenarioA_AutoAttack(t *testing.T) {
	f := newFake()
	opening := table([]game.Card{seven, three, spadeKing}, []game.Card{game.NewCard(game.SuitHeart, 9)}, []int{21}, 0)
	f.newGame = opening
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 21, Expression: "7*3", Result: 21}
	// The server consumed 3♣ and returned the defeated 9♥ to the hand.
	f.defeat = table([]game.Card{seven, spadeKing, game.NewCard(game.SuitHeart, 9)}, []game.Card{game.NewCard(game.SuitClub, 5)}, []int{5}, 0)

	c := NewController(f, nil)
	started(t, c)

	if err := c.SelectTarget(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.ChooseAuto(context.Background()); err != nil {
		t.Fatalf("auto: %v", err)
	}
	st := c.Status()
	if st.State != StateSolutionShown || st.Solution == nil || st.Solution.Expression != "7*3" || st.Solution.Result != 21 {
		t.Fatalf("unexpected status after auto: %+v", st)
	}
	if err := c.CommitAttack(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if f.lastCommit.SkipValidation || f.lastCommit.EnemyIndex != 0 {
		t.Fatalf("automatic commit expected, got %+v", f.lastCommit)
	}
	st = c.Status()
	if st.State != StateAwaitingDiscard {
		t.Fatalf("expected AwaitingDiscard, got %s", st.State)
	}
	if st.Session.KingsDefeated != 0 || len(st.Session.Enemies) != 1 {
		t.Fatalf("session not replaced: %+v", st.Session)
	}
	if len(st.Discardable) != 2 || st.Discardable[0].Index != 0 || st.Discardable[1].Index != 2 {
		t.Fatalf("unexpected discardable %+v", st.Discardable)
	}
	if st.Target != -1 || st.Solution != nil {
		t.Fatalf("attack flow should be reset after commit: %+v", st)
	}
}

func TestScenarioB_InvalidExpressionKeepsSession(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, three, spadeKing}, []game.Card{game.NewCard(game.SuitHeart, 9)}, []int{21}, 0)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 21}
	f.handValues = []game.HandValue{{Card: seven, NumericValue: 7}, {Card: three, NumericValue: 3}, {Card: spadeKing, NumericValue: 13}}
	ten, target := 10.0, 21
	f.validation = game.Validation{Valid: false, Result: &ten, TargetValue: &target, Error: "result 10 does not equal target value 21"}

	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)
	if err := c.ChooseManual(context.Background()); err != nil {
		t.Fatalf("manual: %v", err)
	}
	st := c.Status()
	if st.State != StateAwaitingExpression || len(st.HandValues) != 3 {
		t.Fatalf("expected AwaitingExpression with hand values, got %+v", st)
	}
	before := st.Session

	for i := 0; i < 2; i++ {
		err := c.SubmitExpression(context.Background(), "7+3")
		if !errors.Is(err, ErrInvalidExpression) {
			t.Fatalf("attempt %d: expected ErrInvalidExpression, got %v", i, err)
		}
		st = c.Status()
		if st.State != StateAwaitingExpression || st.Validation == nil || *st.Validation.Result != 10 {
			t.Fatalf("attempt %d: unexpected status %+v", i, st)
		}
		if st.Session != before {
			t.Fatalf("validation must not replace the session")
		}
	}
	if f.count("validate") != 2 || f.count("defeat") != 0 {
		t.Fatalf("unexpected calls %v", f.calls)
	}

	if err := c.SubmitExpression(context.Background(), "  "); !errors.Is(err, ErrEmptyExpression) {
		t.Fatalf("expected ErrEmptyExpression, got %v", err)
	}
	if f.count("validate") != 2 {
		t.Fatalf("empty expressions must not reach the server")
	}

	res := 21.0
	f.validation = game.Validation{Valid: true, Result: &res, TargetValue: &target}
	if err := c.SubmitExpression(context.Background(), "7*3"); err != nil {
		t.Fatalf("valid submit: %v", err)
	}
	expectState(t, c, StateExpressionValidated)

	f.defeat = table([]game.Card{seven, three, spadeKing, game.NewCard(game.SuitHeart, 9)}, nil, nil, 0)
	if err := c.CommitAttack(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !f.lastCommit.SkipValidation || f.lastCommit.Expression != "7*3" {
		t.Fatalf("manual commit expected, got %+v", f.lastCommit)
	}
}

func TestScenarioC_VictorySkipsDiscard(t *testing.T) {
	f := newFake()
	six := game.NewCard(game.SuitHeart, 6)
	f.newGame = table([]game.Card{seven, six, spadeKing}, []game.Card{heartKing}, []int{13}, 2)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 13, Expression: "(7 + 6)", Result: 13}
	f.defeat = table([]game.Card{seven, six, spadeKing, heartKing}, nil, nil, 3)

	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)
	_ = c.ChooseAuto(context.Background())
	if err := c.CommitAttack(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	st := c.Status()
	if st.State != StateVictory {
		t.Fatalf("expected GameOver(Victory), got %s", st.State)
	}
	if len(st.Discardable) != 0 {
		t.Fatalf("no discard step after victory")
	}
	if err := c.Discard(context.Background(), 0); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if err := c.SelectTarget(0); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

// toDiscard drives a controller into AwaitingDiscard with hand [♦7, ♠K, ♣3].
func toDiscard(t *testing.T) (*Controller, *fakeRemote) {
	t.Helper()
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 3, Expression: "3", Result: 3}
	f.defeat = table([]game.Card{seven, spadeKing, three}, []game.Card{game.NewCard(game.SuitHeart, 2)}, []int{2}, 0)
	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)
	_ = c.ChooseAuto(context.Background())
	if err := c.CommitAttack(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	expectState(t, c, StateAwaitingDiscard)
	return c, f
}

func TestScenarioD_SpadeKingDiscardRejectedLocally(t *testing.T) {
	c, f := toDiscard(t)
	before := f.total()
	if err := c.Discard(context.Background(), 1); !errors.Is(err, ErrSpadeKingProtected) {
		t.Fatalf("expected ErrSpadeKingProtected, got %v", err)
	}
	if err := c.Discard(context.Background(), 7); !errors.Is(err, ErrCardOutOfRange) {
		t.Fatalf("expected ErrCardOutOfRange, got %v", err)
	}
	if f.total() != before {
		t.Fatalf("local rejections must not call the server")
	}
	expectState(t, c, StateAwaitingDiscard)

	f.discard = table([]game.Card{spadeKing, three}, []game.Card{game.NewCard(game.SuitHeart, 2)}, []int{2}, 0)
	if err := c.Discard(context.Background(), 0); err != nil {
		t.Fatalf("discard: %v", err)
	}
	st := c.Status()
	if st.State != StateIdle || len(st.Session.Hand) != 2 {
		t.Fatalf("unexpected status after discard: %+v", st)
	}
}

func TestDiscardFromIdleRejected(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	c := NewController(f, nil)
	started(t, c)
	if err := c.Discard(context.Background(), 0); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if f.count("discard") != 0 {
		t.Fatalf("discard from Idle must not reach the server")
	}
}

func TestAutoSkipWhenOnlySpadeKing(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{spadeKing}, []game.Card{heartKing}, []int{13}, 0)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 13, Expression: "13", Result: 13}
	// The server can send a hand without anything but the spade king.
	f.defeat = table([]game.Card{spadeKing}, []game.Card{three}, []int{3}, 1)
	view := &recordingView{}
	c := NewController(f, view)
	started(t, c)
	_ = c.SelectTarget(0)
	_ = c.ChooseAuto(context.Background())
	if err := c.CommitAttack(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	expectState(t, c, StateIdle)
	if len(view.notices) == 0 {
		t.Fatalf("expected a notice about the skipped discard")
	}
}

func TestUnsolvableReturnsToIdle(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	f.reach = game.Reachability{CanDefeat: false, TargetValue: 3}
	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)
	if err := c.ChooseManual(context.Background()); !errors.Is(err, ErrUnsolvable) {
		t.Fatalf("expected ErrUnsolvable, got %v", err)
	}
	st := c.Status()
	if st.State != StateIdle || st.Target != -1 {
		t.Fatalf("expected Idle without target, got %+v", st)
	}
	if f.count("hand-values") != 0 {
		t.Fatalf("hand values are only fetched for reachable targets")
	}
}

func TestTransportErrorsKeepState(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	f.reachErr = &game.TransportError{Op: "check", Err: errors.New("connection refused")}
	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)

	err := c.ChooseAuto(context.Background())
	if !game.IsRetryable(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	expectState(t, c, StateTargetChosen)

	f.reachErr = nil
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 3, Expression: "3", Result: 3}
	if err := c.ChooseAuto(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	before := c.Status().Session
	f.defeatErr = &game.RejectedError{Status: 409, Reason: "Game was modified"}
	err = c.CommitAttack(context.Background())
	if reason, ok := game.RejectionReason(err); !ok || reason != "Game was modified" {
		t.Fatalf("expected rejection, got %v", err)
	}
	st := c.Status()
	if st.State != StateSolutionShown || st.Session != before || st.Busy {
		t.Fatalf("rejected commit must not change state: %+v", st)
	}
}

func TestBusyAndCancelReconcile(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 3, Expression: "3", Result: 3}
	f.defeat = table([]game.Card{seven, spadeKing, three}, []game.Card{heartKing}, []int{13}, 0)
	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)
	_ = c.ChooseAuto(context.Background())

	f.hold()
	done := make(chan error, 1)
	go func() { done <- c.CommitAttack(context.Background()) }()
	if name := <-f.started; name != "defeat" {
		t.Fatalf("expected defeat call, got %s", name)
	}

	if !c.Status().Busy {
		t.Fatalf("controller should be busy during the commit")
	}
	if err := c.SelectTarget(0); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := c.NewGame(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := c.Cancel(); err != nil {
		t.Fatalf("cancel while busy: %v", err)
	}
	expectState(t, c, StateIdle)

	close(f.gate)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("commit did not finish")
	}
	st := c.Status()
	if st.State != StateAwaitingDiscard || len(st.Session.Hand) != 3 {
		t.Fatalf("late commit must still be applied: %+v", st)
	}
}

func TestCancelSupersedesCheck(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 3, Expression: "3", Result: 3}
	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)

	f.hold()
	done := make(chan error, 1)
	go func() { done <- c.ChooseAuto(context.Background()) }()
	<-f.started
	expectState(t, c, StateMethodAuto)
	if err := c.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	close(f.gate)
	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	st := c.Status()
	if st.State != StateIdle || st.Solution != nil || st.Busy {
		t.Fatalf("superseded answer must be dropped: %+v", st)
	}
}

func TestCancelDiscard(t *testing.T) {
	c, f := toDiscard(t)
	if err := c.CancelDiscard(); err != nil {
		t.Fatalf("cancel discard: %v", err)
	}
	expectState(t, c, StateIdle)
	if f.count("discard") != 0 {
		t.Fatalf("cancel discard is local")
	}
	if err := c.CancelDiscard(); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition from Idle, got %v", err)
	}
	if err := c.Cancel(); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("cancel from Idle should be rejected, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three, heartKing}, []int{3, 13}, 0)
	c := NewController(f, nil)
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	started(t, c)
	_ = c.SelectTarget(1)

	f.state = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	st := c.Status()
	if st.State != StateIdle || st.Target != -1 || len(st.Session.Enemies) != 1 {
		t.Fatalf("missing target should be dropped: %+v", st)
	}

	f.state = table([]game.Card{seven, spadeKing}, nil, nil, 1)
	f.state.IsGameOver = true
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	expectState(t, c, StateDefeat)
	if err := c.SelectTarget(0); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}

	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	if err := c.NewGame(context.Background()); err != nil {
		t.Fatalf("new game after defeat: %v", err)
	}
	expectState(t, c, StateIdle)
}

func TestInvalidSnapshotNotApplied(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	c := NewController(f, nil)
	started(t, c)

	f.state = table([]game.Card{seven, spadeKing}, []game.Card{three}, nil, 0)
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if len(c.Status().Session.EnemyValues) != 1 {
		t.Fatalf("invalid snapshot must not replace the session")
	}
}

func TestCommitKeepsTargetOnInvalidSnapshot(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, three, spadeKing}, []game.Card{game.NewCard(game.SuitHeart, 9)}, []int{21}, 0)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 21, Expression: "(7 * 3)", Result: 21}
	c := NewController(f, nil)
	started(t, c)
	_ = c.SelectTarget(0)
	if err := c.ChooseAuto(context.Background()); err != nil {
		t.Fatalf("auto: %v", err)
	}

	f.defeat = table([]game.Card{seven, spadeKing}, []game.Card{three}, nil, 0)
	if err := c.CommitAttack(context.Background()); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	st := c.Status()
	if st.State != StateSolutionShown || st.Target != 0 || st.Solution == nil {
		t.Fatalf("attack should survive a rejected snapshot: %+v", st)
	}

	f.defeat = table([]game.Card{seven, spadeKing, game.NewCard(game.SuitHeart, 9)}, []game.Card{three}, []int{3}, 0)
	if err := c.CommitAttack(context.Background()); err != nil {
		t.Fatalf("retried commit: %v", err)
	}
	if f.lastCommit.EnemyIndex != 0 {
		t.Fatalf("retried commit must target enemy 0, got %+v", f.lastCommit)
	}
	expectState(t, c, StateAwaitingDiscard)
}

func TestRefreshTargetValueChanged(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, three, spadeKing}, []game.Card{game.NewJoker(game.JokerBig)}, []int{4}, 0)
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 4, Expression: "(7 - 3)", Result: 4}
	v := &recordingView{}
	c := NewController(f, v)
	started(t, c)
	_ = c.SelectTarget(0)
	if err := c.ChooseAuto(context.Background()); err != nil {
		t.Fatalf("auto: %v", err)
	}

	// Same enemy, new context: the joker is now worth something else.
	f.state = table([]game.Card{seven, three, spadeKing}, []game.Card{game.NewJoker(game.JokerBig), game.NewCard(game.SuitClub, 10)}, []int{10, 10}, 0)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	st := c.Status()
	if st.State != StateTargetChosen || st.Target != 0 || st.TargetValue != 10 || st.Solution != nil || st.Validation != nil {
		t.Fatalf("stale solution must be dropped: %+v", st)
	}
	if len(v.notices) == 0 {
		t.Fatalf("expected a notice about the changed target")
	}

	// Unchanged value keeps the method choice.
	f.reach = game.Reachability{CanDefeat: true, TargetValue: 10, Expression: "(7 + 3)", Result: 10}
	if err := c.ChooseAuto(context.Background()); err != nil {
		t.Fatalf("auto: %v", err)
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if st := c.Status(); st.State != StateSolutionShown || st.Solution == nil {
		t.Fatalf("solution for an unchanged target should stay: %+v", st)
	}
}

func TestIllegalIntents(t *testing.T) {
	f := newFake()
	f.newGame = table([]game.Card{seven, spadeKing}, []game.Card{three}, []int{3}, 0)
	c := NewController(f, nil)
	if err := c.SelectTarget(0); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	started(t, c)
	if err := c.ChooseAuto(context.Background()); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if err := c.CommitAttack(context.Background()); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if err := c.SubmitExpression(context.Background(), "3"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if err := c.SelectTarget(4); !errors.Is(err, ErrTargetOutOfRange) {
		t.Fatalf("expected ErrTargetOutOfRange, got %v", err)
	}
	if err := c.SelectTarget(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.SelectTarget(0); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("second select should need a cancel first, got %v", err)
	}
	if f.total() != 1 {
		t.Fatalf("only the new game call should have reached the server, got %v", f.calls)
	}
}

func TestDiscardable(t *testing.T) {
	hand := []game.Card{spadeKing, seven, three}
	slots := Discardable(hand)
	for _, s := range slots {
		if s.Card.IsSpadeKing() {
			t.Fatalf("spade king listed as discardable")
		}
		if !hand[s.Index].Equal(s.Card) {
			t.Fatalf("slot index does not point at its card: %+v", s)
		}
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if len(Discardable([]game.Card{spadeKing})) != 0 {
		t.Fatalf("a lone spade king leaves nothing to discard")
	}
}
