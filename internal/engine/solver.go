package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Rukaro/HeartBreaker/internal/game"
)

// epsilon is the tolerance used when comparing computed values.
const epsilon = 1e-4

// ErrSearchAborted is returned when the context ends before the search does.
var ErrSearchAborted = errors.New("solver search aborted")

// checkEvery is how many search nodes are visited between context checks.
const checkEvery = 1024

// Solution is a witness expression over hand values and its value.
type Solution struct {
	Expression string
	Result     float64
}

type term struct {
	expr string
	val  float64
}

// searchContext carries the target and the multisets already explored
// without success, so equivalent intermediate states are only searched once.
type searchContext struct {
	ctx    context.Context
	target float64
	dead   map[string]struct{}
	nodes  int
	err    error
}

// Solve looks for an expression over the hand that equals target. Every
// card other than the spade king must be used; the spade king is optional
// and is only tried after the search without it fails. The search stops
// with ErrSearchAborted once ctx is done.
func Solve(ctx context.Context, hand []game.Card, target int) (Solution, bool, error) {
	var required, all []term
	for _, c := range hand {
		v := game.NumericValue(c, hand)
		t := term{expr: strconv.Itoa(v), val: float64(v)}
		all = append(all, t)
		if !c.IsSpadeKing() {
			required = append(required, t)
		}
	}
	if len(required) > 0 {
		if s, ok, err := solveTerms(ctx, required, target); ok || err != nil {
			return s, ok, err
		}
	}
	if len(all) > len(required) {
		return solveTerms(ctx, all, target)
	}
	return Solution{}, false, nil
}

func solveTerms(ctx context.Context, terms []term, target int) (Solution, bool, error) {
	sc := &searchContext{ctx: ctx, target: float64(target), dead: make(map[string]struct{})}
	t, ok := sc.search(terms)
	if sc.err != nil {
		return Solution{}, false, sc.err
	}
	if !ok {
		return Solution{}, false, nil
	}
	return Solution{Expression: t.expr, Result: t.val}, true, nil
}

func (sc *searchContext) search(terms []term) (term, bool) {
	if sc.nodes%checkEvery == 0 {
		if err := sc.ctx.Err(); err != nil {
			sc.err = fmt.Errorf("%w: %w", ErrSearchAborted, err)
		}
	}
	sc.nodes++
	if sc.err != nil {
		return term{}, false
	}
	if len(terms) == 1 {
		if math.Abs(terms[0].val-sc.target) < epsilon {
			return terms[0], true
		}
		return term{}, false
	}
	key := stateKey(terms)
	if _, seen := sc.dead[key]; seen {
		return term{}, false
	}
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			rest := make([]term, 0, len(terms)-1)
			for k := range terms {
				if k != i && k != j {
					rest = append(rest, terms[k])
				}
			}
			for _, combined := range combine(terms[i], terms[j]) {
				if t, ok := sc.search(append(rest, combined)); ok {
					return t, true
				}
			}
		}
	}
	sc.dead[key] = struct{}{}
	return term{}, false
}

// combine returns every binary combination of a and b, both operand
// orders for the non-commutative operators.
func combine(a, b term) []term {
	out := []term{
		{expr: "(" + a.expr + " + " + b.expr + ")", val: a.val + b.val},
		{expr: "(" + a.expr + " - " + b.expr + ")", val: a.val - b.val},
		{expr: "(" + b.expr + " - " + a.expr + ")", val: b.val - a.val},
		{expr: "(" + a.expr + " * " + b.expr + ")", val: a.val * b.val},
	}
	if math.Abs(b.val) >= epsilon {
		out = append(out, term{expr: "(" + a.expr + " / " + b.expr + ")", val: a.val / b.val})
	}
	if math.Abs(a.val) >= epsilon {
		out = append(out, term{expr: "(" + b.expr + " / " + a.expr + ")", val: b.val / a.val})
	}
	return out
}

func stateKey(terms []term) string {
	vals := make([]float64, len(terms))
	for i, t := range terms {
		vals[i] = t.val
	}
	sort.Float64s(vals)
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', 10, 64)
	}
	return strings.Join(parts, ",")
}
