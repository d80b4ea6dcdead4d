package engine

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/Rukaro/HeartBreaker/internal/game"
)

var (
	ErrEmptyExpression   = errors.New("expression is empty")
	ErrExpressionCharset = errors.New("expression may only contain numbers, + - * / and parentheses")
	ErrNotANumber        = errors.New("expression does not evaluate to a number")
)

var (
	expressionCharset = regexp.MustCompile(`^[0-9+\-*/(). ]+$`)
	numberPattern     = regexp.MustCompile(`\d+\.?\d*`)
)

// Evaluate computes the value of an arithmetic expression over numbers and
// the four operators.
func Evaluate(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyExpression
	}
	if !expressionCharset.MatchString(text) {
		return 0, ErrExpressionCharset
	}
	out, err := expr.Eval(text, nil)
	if err != nil {
		return 0, err
	}
	var v float64
	switch n := out.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float64:
		v = n
	default:
		return 0, ErrNotANumber
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// ValidateExpression checks a player's expression against the target value.
// The expression must evaluate to the target, use the value of every card
// except the spade king, and use no number that is not a hand value. A
// failed check is reported through Validation.Error.
func ValidateExpression(hand []game.Card, target int, text string) game.Validation {
	tv := target
	res := game.Validation{TargetValue: &tv}

	result, err := Evaluate(text)
	if err != nil {
		res.Error = "invalid expression: " + err.Error()
		return res
	}
	res.Result = &result
	if math.Abs(result-float64(target)) > epsilon {
		res.Error = fmt.Sprintf("result %s does not equal target value %d", formatNumber(result), target)
		return res
	}

	used := usedNumbers(text)
	handValues := make([]float64, len(hand))
	var required []float64
	for i, c := range hand {
		handValues[i] = float64(game.NumericValue(c, hand))
		if !c.IsSpadeKing() {
			required = append(required, handValues[i])
		}
	}

	remaining := append([]float64(nil), used...)
	var missing []float64
	for _, want := range required {
		found := false
		for i, u := range remaining {
			if math.Abs(u-want) < epsilon {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		res.Error = "not every required card was used (missing values: " + formatList(missing) + ")"
		return res
	}

	var foreign []float64
	for _, u := range used {
		ok := false
		for _, hv := range handValues {
			if math.Abs(u-hv) < epsilon {
				ok = true
				break
			}
		}
		if !ok {
			foreign = append(foreign, u)
		}
	}
	if len(foreign) > 0 {
		res.Error = "uses values that are not in the hand: " + formatList(foreign)
		return res
	}

	res.Valid = true
	return res
}

func usedNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.TrimSuffix(m, "."), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func formatList(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
