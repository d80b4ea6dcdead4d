package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/turn"
)

// terminalView prints the turn to a line-based terminal.
type terminalView struct {
	out io.Writer
}

func (v *terminalView) Notice(msg string) {
	fmt.Fprintf(v.out, "* %s\n", msg)
}

func (v *terminalView) Render(st turn.Status) {
	if st.Session == nil || st.Busy {
		return
	}
	s := st.Session
	var b strings.Builder
	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "HeartBreaker  kings defeated %d/%d  deck %d\n", s.KingsDefeated, game.KingsToWin, s.DeckSize)

	b.WriteString("\nHand:\n")
	for i, c := range s.Hand {
		marker := ""
		if c.IsSpadeKing() {
			marker = "  (you)"
		}
		fmt.Fprintf(&b, "  %d. %s%s\n", i+1, c.Display(), marker)
	}
	b.WriteString("\nEnemies:\n")
	for i, e := range s.Enemies {
		marker := ""
		if e.IsKing() {
			marker = "  (king)"
		}
		if i == st.Target {
			marker += "  <- target"
		}
		fmt.Fprintf(&b, "  %d. %s  value %d%s\n", i+1, e.Card.Display(), s.EnemyValues[i], marker)
	}

	b.WriteString("\n")
	switch st.State {
	case turn.StateIdle:
		b.WriteString("Pick an enemy number to attack, r to refresh, n for a new game, q to quit.\n")
	case turn.StateTargetChosen:
		fmt.Fprintf(&b, "Target value %d. a = solve automatically, m = enter your own expression, c = cancel.\n", st.TargetValue)
	case turn.StateSolutionShown:
		if st.Solution != nil {
			fmt.Fprintf(&b, "Solution found: %s = %s (target %d)\n", st.Solution.Expression, formatResult(st.Solution.Result), st.TargetValue)
		}
		b.WriteString("y = attack, c = cancel.\n")
	case turn.StateAwaitingExpression:
		if len(st.HandValues) > 0 {
			parts := make([]string, len(st.HandValues))
			for i, hv := range st.HandValues {
				parts[i] = fmt.Sprintf("%s=%d", hv.Card.Display(), hv.NumericValue)
			}
			fmt.Fprintf(&b, "Hand values: %s\n", strings.Join(parts, " "))
		}
		fmt.Fprintf(&b, "Type an expression equal to %d using every card except the spade king, or c to cancel.\n", st.TargetValue)
	case turn.StateExpressionValidated:
		fmt.Fprintf(&b, "Expression %q is valid. y = attack, another expression to replace it, c = cancel.\n", st.Expression)
	case turn.StateAwaitingDiscard:
		b.WriteString("Discard one card (the spade king stays):\n")
		for _, slot := range st.Discardable {
			fmt.Fprintf(&b, "  %d. %s\n", slot.Index+1, slot.Card.Display())
		}
		b.WriteString("Card number to discard, s to keep every card.\n")
	case turn.StateVictory:
		b.WriteString("Victory! All three kings have fallen. n = new game, q = quit.\n")
	}
	if s.IsDefeat() {
		fmt.Fprintf(&b, "Game over: no enemies left to fight, %d of %d kings defeated. n = new game, q = quit.\n", s.KingsDefeated, game.KingsToWin)
	}
	io.WriteString(v.out, b.String())
}

func formatResult(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.4g", v)
}
