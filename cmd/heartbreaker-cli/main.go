package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/Rukaro/HeartBreaker/internal/client"
	"github.com/Rukaro/HeartBreaker/internal/config"
	"github.com/Rukaro/HeartBreaker/internal/game"
	"github.com/Rukaro/HeartBreaker/internal/logging"
	"github.com/Rukaro/HeartBreaker/internal/turn"
)

const intro = `Welcome to HeartBreaker.
You are the king of spades: defeat the other three kings to win.
Combine your hand with + - * / to reach an enemy's value and defeat it.
Every card except the spade king must be used; the spade king is optional.
`

func main() {
	logging.Init("warn")
	defer logging.Sync()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		logging.Fatal("invalid client configuration", err, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Print(intro)
	ctl := turn.NewController(client.New(cfg), &terminalView{out: os.Stdout})
	if err := ctl.NewGame(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cannot start a game on %s: %v\n", cfg.ServerURL, err)
		os.Exit(1)
	}
	run(ctx, ctl, os.Stdin, os.Stdout)
}

// run reads commands until quit, end of input or ctx is cancelled.
func run(ctx context.Context, ctl *turn.Controller, in io.Reader, out io.Writer) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nbye")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			quit, err := handleLine(ctx, ctl, line)
			if err != nil {
				fmt.Fprintln(out, describe(err))
			}
			if quit {
				return
			}
		}
	}
}

// handleLine maps one input line to a controller intent for the current
// state.
func handleLine(ctx context.Context, ctl *turn.Controller, line string) (bool, error) {
	line = strings.TrimSpace(line)
	cmd := strings.ToLower(line)
	st := ctl.Status()

	switch cmd {
	case "":
		return false, nil
	case "q", "quit":
		return true, nil
	case "n":
		return false, ctl.NewGame(ctx)
	case "r":
		return false, ctl.Refresh(ctx)
	case "c":
		return false, ctl.Cancel()
	}

	switch st.State {
	case turn.StateIdle:
		n, err := strconv.Atoi(cmd)
		if err != nil {
			return false, fmt.Errorf("enter an enemy number")
		}
		return false, ctl.SelectTarget(n - 1)
	case turn.StateTargetChosen:
		switch cmd {
		case "a":
			return false, ctl.ChooseAuto(ctx)
		case "m":
			return false, ctl.ChooseManual(ctx)
		}
	case turn.StateSolutionShown:
		if cmd == "y" {
			return false, ctl.CommitAttack(ctx)
		}
	case turn.StateAwaitingExpression:
		return false, ctl.SubmitExpression(ctx, line)
	case turn.StateExpressionValidated:
		if cmd == "y" {
			return false, ctl.CommitAttack(ctx)
		}
		return false, ctl.SubmitExpression(ctx, line)
	case turn.StateAwaitingDiscard:
		if cmd == "s" {
			return false, ctl.CancelDiscard()
		}
		n, err := strconv.Atoi(cmd)
		if err != nil {
			return false, fmt.Errorf("enter a card number")
		}
		return false, ctl.Discard(ctx, n-1)
	}
	return false, fmt.Errorf("unknown command %q", line)
}

func describe(err error) string {
	if reason, ok := game.RejectionReason(err); ok {
		return "server refused: " + reason
	}
	switch {
	case game.IsRetryable(err):
		return "server unreachable, try again: " + err.Error()
	case errors.Is(err, turn.ErrUnsolvable):
		return "that enemy cannot be defeated with your hand, pick another one"
	case errors.Is(err, turn.ErrInvalidExpression):
		return "not quite: " + strings.TrimPrefix(err.Error(), turn.ErrInvalidExpression.Error()+": ")
	}
	return err.Error()
}
