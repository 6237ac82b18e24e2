/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package quiz implements the round engine for the kids quiz: question
// selection, answer scoring, lives, 50/50 hints and end-of-round tiers.
//
// The engine never renders anything and never sleeps. Operations return
// descriptors, and the delay between an answer and the next question is
// handed back to the caller as a Ticket to be scheduled however the
// presentation layer likes. Tickets are bound to the round generation that
// issued them, so a late ticket can never move a newer round forward.
package quiz

import (
	"errors"
	"math/rand/v2"
	"slices"
	"time"
)

const (
	DefaultRoundSize    = 10
	DefaultAdvanceDelay = 1500 * time.Millisecond

	StartingLives = 5
	StartingHints = 3

	BasePoints = 10
	// SpeedBonus is flat; no answer timing is tracked.
	SpeedBonus = 2

	hintSuppressCount = 2
)

// ErrEmptyPool is returned by StartRound when there are no questions to draw from.
var ErrEmptyPool = errors.New("question pool is empty")

type Phase int

const (
	Idle Phase = iota
	Active
	Resolving
	Ended
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Resolving:
		return "resolving"
	case Ended:
		return "ended"
	default:
		return "idle"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Stats is a snapshot of the round counters.
type Stats struct {
	Index   int `json:"index"`
	Total   int `json:"total"`
	Score   int `json:"score"`
	Lives   int `json:"lives"`
	Correct int `json:"correct"`
	Hints   int `json:"hints"`
}

// Result describes the outcome of a submitted answer.
type Result struct {
	Correct        bool `json:"correct"`
	CorrectOption  int  `json:"correct_option"`
	SelectedOption int  `json:"selected_option"`
	ScoreDelta     int  `json:"score_delta"`
}

// Ticket is a pending advance. The zero Ticket means nothing is pending.
type Ticket struct {
	Round uint64
	Delay time.Duration
}

func (t Ticket) Pending() bool {
	return t.Round != 0
}

// Summary holds the final stats of a round.
type Summary struct {
	Score   int  `json:"score"`
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Tier    Tier `json:"tier"`
}

type Option func(*Engine)

// WithRand replaces the engine's random source. Mostly useful in tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

func WithAdvanceDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// Engine owns the state of one player's rounds. It is not safe for
// concurrent use; callers serialize access (see Session in the web server).
type Engine struct {
	rng   *rand.Rand
	delay time.Duration

	questions  []Question
	index      int
	score      int
	lives      int
	correct    int
	hints      int
	phase      Phase
	round      uint64
	suppressed []int
	summary    Summary
}

func New(opts ...Option) *Engine {
	e := &Engine{
		delay: DefaultAdvanceDelay,
		lives: StartingLives,
		hints: StartingHints,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newRand()
	}
	return e
}

// StartRound draws a uniform random permutation of pool truncated to
// roundSize and resets all counters. Any ticket issued before the call
// becomes stale.
func (e *Engine) StartRound(pool []Question, roundSize int) (Question, Stats, error) {
	if len(pool) == 0 {
		return Question{}, Stats{}, ErrEmptyPool
	}
	if roundSize <= 0 {
		roundSize = DefaultRoundSize
	}

	n := min(roundSize, len(pool))
	perm := e.rng.Perm(len(pool))

	questions := make([]Question, n)
	for i := range questions {
		questions[i] = pool[perm[i]]
	}

	e.questions = questions
	e.index = 0
	e.score = 0
	e.lives = StartingLives
	e.correct = 0
	e.hints = StartingHints
	e.suppressed = nil
	e.summary = Summary{}
	e.round++
	e.phase = Active

	return e.questions[0], e.Stats(), nil
}

// SubmitAnswer scores the selected option of the current question. It
// reports ok=false, leaving the state untouched, unless the round is
// accepting input and selected is a visible option index. Options hidden
// by a hint cannot be chosen.
//
// The returned Ticket is pending unless the answer cost the last life, in
// which case the round has already ended.
func (e *Engine) SubmitAnswer(selected int) (Result, Ticket, bool) {
	if e.phase != Active {
		return Result{}, Ticket{}, false
	}

	q := e.questions[e.index]
	if selected < 0 || selected >= len(q.Options) || slices.Contains(e.suppressed, selected) {
		return Result{}, Ticket{}, false
	}

	e.phase = Resolving

	res := Result{
		CorrectOption:  q.Answer,
		SelectedOption: selected,
	}

	if selected == q.Answer {
		res.Correct = true
		res.ScoreDelta = BasePoints + SpeedBonus
		e.score += res.ScoreDelta
		e.correct++
	} else if e.lives > 0 {
		e.lives--
	}

	if e.lives == 0 {
		e.end()

		return res, Ticket{}, true
	}

	return res, Ticket{Round: e.round, Delay: e.delay}, true
}

// Advance moves past a resolved question. It returns the next question and
// true, or false when nothing was waiting or the round is now over.
func (e *Engine) Advance() (Question, bool) {
	if e.phase != Resolving {
		return Question{}, false
	}

	e.index++
	e.suppressed = nil

	if e.index >= len(e.questions) {
		e.end()

		return Question{}, false
	}

	e.phase = Active

	return e.questions[e.index], true
}

// AdvanceTicket is Advance guarded by the generation that issued t.
func (e *Engine) AdvanceTicket(t Ticket) (Question, bool) {
	if !t.Pending() || t.Round != e.round {
		return Question{}, false
	}

	return e.Advance()
}

// UseHint hides up to two incorrect options of the current question and
// returns their indices in ascending order. The correct option is never
// picked, and options hidden by an earlier hint are not picked again.
func (e *Engine) UseHint() ([]int, bool) {
	if e.phase != Active || e.hints <= 0 {
		return nil, false
	}

	q := e.questions[e.index]

	candidates := make([]int, 0, len(q.Options))
	for i := range q.Options {
		if i == q.Answer || slices.Contains(e.suppressed, i) {
			continue
		}
		candidates = append(candidates, i)
	}

	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	picked := slices.Clone(candidates[:min(hintSuppressCount, len(candidates))])
	slices.Sort(picked)

	e.suppressed = append(e.suppressed, picked...)
	slices.Sort(e.suppressed)
	e.hints--

	return picked, true
}

// EndRound finishes the round in progress and returns its summary. Once a
// round has ended, further calls return the same summary.
func (e *Engine) EndRound() Summary {
	if e.phase == Active || e.phase == Resolving {
		e.end()
	}

	return e.summary
}

// Cancel abandons the round in progress, returning the engine to Idle.
// Pending tickets become stale.
func (e *Engine) Cancel() {
	e.round++
	if e.phase == Active || e.phase == Resolving {
		e.phase = Idle
	}
	e.suppressed = nil
}

func (e *Engine) end() {
	e.phase = Ended
	e.summary = Summary{
		Score:   e.score,
		Correct: e.correct,
		Total:   len(e.questions),
		Tier:    TierFor(e.correct),
	}
}

func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) Round() uint64 {
	return e.round
}

func (e *Engine) Summary() Summary {
	return e.summary
}

func (e *Engine) Stats() Stats {
	return Stats{
		Index:   e.index,
		Total:   len(e.questions),
		Score:   e.score,
		Lives:   e.lives,
		Correct: e.correct,
		Hints:   e.hints,
	}
}

// Current returns the question being played, if any.
func (e *Engine) Current() (Question, bool) {
	if e.phase != Active && e.phase != Resolving {
		return Question{}, false
	}

	return e.questions[e.index], true
}

// Suppressed returns the options hidden by hints on the current question.
func (e *Engine) Suppressed() []int {
	return slices.Clone(e.suppressed)
}

// View returns the current question without its answer.
func (e *Engine) View() (QuestionView, bool) {
	q, ok := e.Current()
	if !ok {
		return QuestionView{}, false
	}

	return QuestionView{
		ID:         q.ID,
		Number:     e.index + 1,
		Total:      len(e.questions),
		Text:       q.Text,
		Options:    slices.Clone(q.Options),
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Suppressed: e.Suppressed(),
	}, true
}
