/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/quizbox/games/quiz"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures the terminal model.
type Options struct {
	NoColor bool
}

// Model draws a navigator in the terminal. It never decides anything on
// its own: keys go to the navigator, and the view reflects what it reports.
type Model struct {
	nav     *quiz.Navigator
	keys    keyMap
	help    help.Model
	noColor bool

	// set between an answer and the next question
	answered *quiz.Result
	pending  quiz.Ticket

	showRules bool
	notice    string
	width     int
}

func NewModel(nav *quiz.Navigator, opts Options) Model {
	h := help.New()
	if opts.NoColor {
		h.Styles = help.Styles{}
	}

	return Model{
		nav:     nav,
		keys:    newKeyMap(),
		help:    h,
		noColor: opts.NoColor,
	}
}

// advanceMsg is delivered once the delay after an answer elapses.
type advanceMsg struct {
	ticket quiz.Ticket
}

func waitForAdvance(t quiz.Ticket) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return advanceMsg{ticket: t}
	})
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		return m, nil

	case advanceMsg:
		return m.advance(typed.ticket), nil

	case tea.KeyMsg:
		if key.Matches(typed, m.keys.Quit) {
			m.nav.Menu()
			return m, tea.Quit
		}

		if m.showRules {
			m.showRules = false
			return m, nil
		}

		switch m.nav.Screen() {
		case quiz.ScreenMultiplayer:
			return m.updateMultiplayer(typed)
		case quiz.ScreenGame:
			return m.updateGame(typed)
		case quiz.ScreenResults:
			return m.updateResults(typed)
		default:
			return m.updateMenu(typed)
		}
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Play):
		return m.play(m.nav.Play)
	case key.Matches(msg, m.keys.Multiplayer):
		m.nav.Multiplayer()
		m.notice = ""
	case key.Matches(msg, m.keys.Rules):
		m.showRules = true
	}

	return m, nil
}

func (m Model) updateMultiplayer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CreateRoom):
		m.nav.CreateRoom()
	case key.Matches(msg, m.keys.Start):
		if m.nav.Room() != "" {
			return m.play(m.nav.PlayMultiplayer)
		}
	case key.Matches(msg, m.keys.Back):
		m.back()
	}

	return m, nil
}

func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Answer):
		if m.answered != nil || len(msg.Runes) != 1 {
			return m, nil
		}

		selected := int(msg.Runes[0] - '1')

		res, ticket, ok := m.nav.Answer(selected)
		if !ok {
			return m, nil
		}

		if !ticket.Pending() {
			m.answered = nil
			return m, nil
		}

		m.answered = &res
		m.pending = ticket

		return m, waitForAdvance(ticket)

	case key.Matches(msg, m.keys.Hint):
		if m.answered == nil {
			m.nav.Hint()
		}

	case key.Matches(msg, m.keys.Pause):
		if !m.nav.Paused() {
			m.nav.Pause()
			return m, nil
		}
		if held, ok := m.nav.Resume(); ok {
			return m.advance(held), nil
		}

	case key.Matches(msg, m.keys.Back):
		m.back()
	}

	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Play):
		return m.play(m.nav.Play)
	case key.Matches(msg, m.keys.Back):
		m.back()
	}

	return m, nil
}

func (m Model) play(start func() (quiz.Question, error)) (tea.Model, tea.Cmd) {
	m.answered = nil
	m.pending = quiz.Ticket{}

	if _, err := start(); err != nil {
		m.notice = "There are no questions to play right now."
		return m, nil
	}

	m.notice = ""

	return m, nil
}

func (m *Model) back() {
	m.answered = nil
	m.pending = quiz.Ticket{}
	m.notice = ""
	m.nav.Menu()
}

// advance moves on once the delay elapsed. Ticks from a round that was
// abandoned or restarted are dropped by the engine. While paused the
// navigator holds the ticket and the answer stays on screen.
func (m Model) advance(t quiz.Ticket) Model {
	if t != m.pending {
		return m
	}

	if m.nav.Paused() {
		m.nav.Advance(t)
		return m
	}

	m.answered = nil
	m.pending = quiz.Ticket{}
	m.nav.Advance(t)

	return m
}

func (m Model) View() string {
	var body string

	switch {
	case m.showRules:
		body = quiz.Rules + "\n\n" + stylize("press any key", m.noColor, colorMuted)
	case m.nav.Screen() == quiz.ScreenMultiplayer:
		body = m.viewMultiplayer()
	case m.nav.Screen() == quiz.ScreenGame:
		body = m.viewGame()
	case m.nav.Screen() == quiz.ScreenResults:
		body = m.viewResults()
	default:
		body = m.viewMenu()
	}

	if m.notice != "" {
		body += "\n\n" + stylize(m.notice, m.noColor, colorWarning)
	}

	box := frame
	if m.width > 4 {
		box = box.MaxWidth(m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		box.Render(body),
		m.help.View(m.keys.forScreen(m.nav.Screen())),
	)
}

func (m Model) viewMenu() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize(bold("🧠 Kids Quiz", m.noColor), m.noColor, colorTitle),
		"",
		"p  Play",
		"m  Play with friends",
		"r  Rules",
	)
}

func (m Model) viewMultiplayer() string {
	lines := []string{
		stylize(bold("👫 Play with friends", m.noColor), m.noColor, colorTitle),
		"",
	}

	if room := m.nav.Room(); room != "" {
		lines = append(lines,
			"Room code: "+bold(room, m.noColor),
			"",
			"s  Start",
		)
	} else {
		lines = append(lines, "c  Create a room")
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewGame() string {
	view, ok := m.nav.Engine().View()
	if !ok {
		return ""
	}

	stats := m.nav.Engine().Stats()

	header := fmt.Sprintf("Question %d/%d   ⭐ %d   ❤️ %d   💡 %d",
		view.Number, view.Total, stats.Score, stats.Lives, stats.Hints)

	lines := []string{
		stylize(header, m.noColor, colorMuted),
	}
	if m.nav.Paused() {
		lines = append(lines, stylize("⏸ Paused, press space to continue", m.noColor, colorWarning))
	}
	if view.Category != "" {
		lines = append(lines, stylize(view.Category, m.noColor, colorMuted))
	}
	lines = append(lines, "", bold(view.Text, m.noColor), "")

	hidden := make(map[int]bool, len(view.Suppressed))
	for _, i := range view.Suppressed {
		hidden[i] = true
	}

	for i, option := range view.Options {
		if hidden[i] {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, m.renderOption(i, option))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderOption(i int, option string) string {
	line := fmt.Sprintf("%d  %s", i+1, option)

	if m.answered == nil {
		return line
	}

	switch {
	case i == m.answered.CorrectOption:
		return stylize(line+"  ✔", m.noColor, colorCorrect)
	case i == m.answered.SelectedOption:
		return stylize(line+"  ✘", m.noColor, colorIncorrect)
	default:
		return stylize(line, m.noColor, colorMuted)
	}
}

func (m Model) viewResults() string {
	summary := m.nav.Engine().Summary()

	return strings.Join([]string{
		stylize(bold(summary.Tier.Message(), m.noColor), m.noColor, colorTitle),
		"",
		fmt.Sprintf("Correct answers: %d/%d", summary.Correct, summary.Total),
		fmt.Sprintf("Score: %d", summary.Score),
	}, "\n")
}
