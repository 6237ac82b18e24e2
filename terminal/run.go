/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package terminal

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/Seednode/quizbox/games/quiz"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when output is not attached to a TTY.
var ErrNotTerminal = errors.New("terminal play needs an interactive terminal")

// IsTerminal reports whether w is attached to a TTY.
func IsTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

// NoColor reports whether the environment asks for plain output.
func NoColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
}

// Run plays on the given terminal until the player quits or ctx is done.
func Run(ctx context.Context, nav *quiz.Navigator, in io.Reader, out io.Writer, opts Options) error {
	if !IsTerminal(out) {
		return ErrNotTerminal
	}

	program := tea.NewProgram(NewModel(nav, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}

	return err
}
