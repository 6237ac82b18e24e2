//go:build cucumber

package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cucumber/godog"
)

// TestRoundFeatures executes the round feature scenarios via godog.
func TestRoundFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "round",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("features", "round.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeScenario wires step definitions for the round feature.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &roundState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a pool of (\d+) questions$`, state.givenPool)
	ctx.Step(`^a round size of (\d+)$`, state.givenRoundSize)
	ctx.Step(`^I start a round$`, state.startRound)
	ctx.Step(`^I answer every question correctly$`, state.answerAllCorrectly)
	ctx.Step(`^I answer (\d+) questions incorrectly$`, state.answerIncorrectly)
	ctx.Step(`^I answer the current question correctly$`, state.answerCorrectly)
	ctx.Step(`^I answer the current question incorrectly$`, state.answerOneIncorrectly)
	ctx.Step(`^I answer without waiting for the next question$`, state.answerWithoutAdvance)
	ctx.Step(`^I use a hint$`, state.useHint)
	ctx.Step(`^I answer a hidden option$`, state.answerHidden)
	ctx.Step(`^the pending advance from the earlier round fires$`, state.fireStaleTicket)
	ctx.Step(`^the round has (\d+) questions$`, state.roundHasQuestions)
	ctx.Step(`^the round has ended$`, state.roundEnded)
	ctx.Step(`^the round is accepting answers$`, state.roundActive)
	ctx.Step(`^the score is (\d+)$`, state.scoreIs)
	ctx.Step(`^the correct count is (\d+)$`, state.correctIs)
	ctx.Step(`^the lives are (\d+)$`, state.livesAre)
	ctx.Step(`^the hints remaining are (\d+)$`, state.hintsAre)
	ctx.Step(`^the tier is "([^"]+)"$`, state.tierIs)
	ctx.Step(`^(\d+) options are suppressed$`, state.suppressedCount)
	ctx.Step(`^the correct option is not suppressed$`, state.correctNotSuppressed)
	ctx.Step(`^the current question number is (\d+)$`, state.questionNumberIs)
}

// roundState holds scenario state for the feature tests.
type roundState struct {
	engine    *Engine
	pool      []Question
	roundSize int
	tickets   []Ticket
}

func (s *roundState) reset() {
	s.engine = New(WithRand(rand.New(rand.NewPCG(1, 2))))
	s.pool = nil
	s.roundSize = DefaultRoundSize
	s.tickets = nil
}

func (s *roundState) givenPool(n int) error {
	s.pool = testPool(n)
	return nil
}

func (s *roundState) givenRoundSize(n int) error {
	s.roundSize = n
	return nil
}

func (s *roundState) startRound() error {
	_, _, err := s.engine.StartRound(s.pool, s.roundSize)
	return err
}

func (s *roundState) answer(correct bool, advance bool) error {
	q, ok := s.engine.Current()
	if !ok {
		return fmt.Errorf("no current question in phase %s", s.engine.Phase())
	}
	choice := q.Answer
	if !correct {
		choice = wrongOption(q)
	}
	_, ticket, _ := s.engine.SubmitAnswer(choice)
	s.tickets = append(s.tickets, ticket)
	if advance && ticket.Pending() {
		s.engine.AdvanceTicket(ticket)
	}
	return nil
}

func (s *roundState) answerAllCorrectly() error {
	for s.engine.Phase() == Active {
		if err := s.answer(true, true); err != nil {
			return err
		}
	}
	return nil
}

func (s *roundState) answerIncorrectly(n int) error {
	for range n {
		if err := s.answer(false, true); err != nil {
			return err
		}
	}
	return nil
}

func (s *roundState) answerCorrectly() error {
	return s.answer(true, true)
}

func (s *roundState) answerOneIncorrectly() error {
	return s.answer(false, true)
}

func (s *roundState) answerWithoutAdvance() error {
	if s.engine.Phase() != Active {
		_, _, ok := s.engine.SubmitAnswer(0)
		if ok {
			return fmt.Errorf("expected answer to be ignored")
		}
		return nil
	}
	return s.answer(true, false)
}

func (s *roundState) answerHidden() error {
	hidden := s.engine.Suppressed()
	if len(hidden) == 0 {
		return fmt.Errorf("no option is hidden")
	}
	if _, _, ok := s.engine.SubmitAnswer(hidden[0]); ok {
		return fmt.Errorf("expected hidden option %d to be ignored", hidden[0])
	}
	return nil
}

func (s *roundState) useHint() error {
	if _, ok := s.engine.UseHint(); !ok {
		return fmt.Errorf("hint was not used")
	}
	return nil
}

func (s *roundState) fireStaleTicket() error {
	if len(s.tickets) == 0 {
		return fmt.Errorf("no ticket was issued")
	}
	if _, ok := s.engine.AdvanceTicket(s.tickets[0]); ok {
		return fmt.Errorf("stale ticket advanced the round")
	}
	return nil
}

func (s *roundState) roundHasQuestions(n int) error {
	if got := s.engine.Stats().Total; got != n {
		return fmt.Errorf("expected %d questions, got %d", n, got)
	}
	return nil
}

func (s *roundState) roundEnded() error {
	if s.engine.Phase() != Ended {
		return fmt.Errorf("expected ended round, got %s", s.engine.Phase())
	}
	return nil
}

func (s *roundState) roundActive() error {
	if s.engine.Phase() != Active {
		return fmt.Errorf("expected active round, got %s", s.engine.Phase())
	}
	return nil
}

func (s *roundState) scoreIs(n int) error {
	if got := s.engine.Stats().Score; got != n {
		return fmt.Errorf("expected score %d, got %d", n, got)
	}
	return nil
}

func (s *roundState) correctIs(n int) error {
	if got := s.engine.Stats().Correct; got != n {
		return fmt.Errorf("expected %d correct, got %d", n, got)
	}
	return nil
}

func (s *roundState) livesAre(n int) error {
	if got := s.engine.Stats().Lives; got != n {
		return fmt.Errorf("expected %d lives, got %d", n, got)
	}
	return nil
}

func (s *roundState) hintsAre(n int) error {
	if got := s.engine.Stats().Hints; got != n {
		return fmt.Errorf("expected %d hints, got %d", n, got)
	}
	return nil
}

func (s *roundState) tierIs(name string) error {
	if got := s.engine.Summary().Tier.String(); got != name {
		return fmt.Errorf("expected tier %q, got %q", name, got)
	}
	return nil
}

func (s *roundState) suppressedCount(n int) error {
	if got := len(s.engine.Suppressed()); got != n {
		return fmt.Errorf("expected %d suppressed options, got %d", n, got)
	}
	return nil
}

func (s *roundState) correctNotSuppressed() error {
	q, ok := s.engine.Current()
	if !ok {
		return fmt.Errorf("no current question")
	}
	if slices.Contains(s.engine.Suppressed(), q.Answer) {
		return fmt.Errorf("correct option %d is suppressed", q.Answer)
	}
	return nil
}

func (s *roundState) questionNumberIs(n int) error {
	if got := s.engine.Stats().Index + 1; got != n {
		return fmt.Errorf("expected question %d, got %d", n, got)
	}
	return nil
}
