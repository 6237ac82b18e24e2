/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"os"

	"github.com/Seednode/quizbox/games/quiz"
	"github.com/Seednode/quizbox/terminal"
)

func PlayTerminal(ctx context.Context, cfg *Config) error {
	if !terminal.IsTerminal(os.Stdout) {
		return terminal.ErrNotTerminal
	}

	pool := quiz.LoadPool(cfg.questions, logger(cfg))

	engine := quiz.New(quiz.WithAdvanceDelay(cfg.advanceDelay))
	nav := quiz.NewNavigator(engine, pool, cfg.roundSize)

	return terminal.Run(ctx, nav, os.Stdin, os.Stdout, terminal.Options{
		NoColor: cfg.noColor || terminal.NoColor(),
	})
}
