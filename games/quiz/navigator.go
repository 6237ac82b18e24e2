/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

type Screen string

const (
	ScreenMenu        Screen = "menu"
	ScreenMultiplayer Screen = "multiplayer"
	ScreenGame        Screen = "game"
	ScreenResults     Screen = "results"
)

const Rules = `📖 How to play:

🎯 Answer questions and collect stars
❤️ You have 5 lives
💡 You have 3 "50/50" hints
⭐ Every correct answer is worth 10 points, plus a 2 point speed bonus

Good luck!`

// Navigator moves a player between the menu, game and results screens and
// drives the engine underneath. Presentation layers talk to the navigator
// and render whatever it reports.
type Navigator struct {
	engine    *Engine
	pool      []Question
	roundSize int

	screen Screen
	room   string

	paused bool
	held   Ticket
}

func NewNavigator(engine *Engine, pool []Question, roundSize int) *Navigator {
	if roundSize <= 0 {
		roundSize = DefaultRoundSize
	}

	return &Navigator{
		engine:    engine,
		pool:      pool,
		roundSize: roundSize,
		screen:    ScreenMenu,
	}
}

func (n *Navigator) Engine() *Engine {
	return n.engine
}

func (n *Navigator) Screen() Screen {
	return n.screen
}

// Room returns the room code created on the multiplayer screen, if any.
func (n *Navigator) Room() string {
	return n.room
}

// Menu abandons any round in progress and shows the main menu.
func (n *Navigator) Menu() {
	n.engine.Cancel()
	n.unpause()
	n.screen = ScreenMenu
}

func (n *Navigator) Multiplayer() {
	n.engine.Cancel()
	n.unpause()
	n.room = ""
	n.screen = ScreenMultiplayer
}

func (n *Navigator) Paused() bool {
	return n.paused
}

// Pause freezes the game screen. Answers and hints are ignored until
// Resume, and an advance arriving meanwhile is held rather than applied.
func (n *Navigator) Pause() bool {
	if n.screen != ScreenGame || n.paused {
		return false
	}

	n.paused = true

	return true
}

// Resume unfreezes the game screen. If an advance was held while paused,
// it is returned so the caller can apply it with Advance.
func (n *Navigator) Resume() (Ticket, bool) {
	if !n.paused {
		return Ticket{}, false
	}

	held := n.held
	n.unpause()

	return held, held.Pending()
}

func (n *Navigator) unpause() {
	n.paused = false
	n.held = Ticket{}
}

// CreateRoom generates a room code for display. Only valid on the
// multiplayer screen.
func (n *Navigator) CreateRoom() (string, bool) {
	if n.screen != ScreenMultiplayer {
		return "", false
	}

	n.room = NewRoomCode()

	return n.room, true
}

// Play starts a fresh round and switches to the game screen.
func (n *Navigator) Play() (Question, error) {
	q, _, err := n.engine.StartRound(n.pool, n.roundSize)
	if err != nil {
		return Question{}, err
	}

	n.unpause()
	n.screen = ScreenGame

	return q, nil
}

// PlayMultiplayer starts a regular single-player round; rooms never
// connect players to each other.
func (n *Navigator) PlayMultiplayer() (Question, error) {
	return n.Play()
}

func (n *Navigator) Answer(selected int) (Result, Ticket, bool) {
	if n.screen != ScreenGame || n.paused {
		return Result{}, Ticket{}, false
	}

	res, ticket, ok := n.engine.SubmitAnswer(selected)
	n.sync()

	return res, ticket, ok
}

func (n *Navigator) Advance(t Ticket) (Question, bool) {
	if n.screen != ScreenGame {
		return Question{}, false
	}

	if n.paused {
		if t.Pending() && t.Round == n.engine.Round() {
			n.held = t
		}
		return Question{}, false
	}

	q, ok := n.engine.AdvanceTicket(t)
	n.sync()

	return q, ok
}

func (n *Navigator) Hint() ([]int, bool) {
	if n.screen != ScreenGame || n.paused {
		return nil, false
	}

	return n.engine.UseHint()
}

func (n *Navigator) sync() {
	if n.engine.Phase() == Ended {
		n.screen = ScreenResults
	}
}
