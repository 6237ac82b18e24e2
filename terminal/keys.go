/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package terminal

import (
	"github.com/Seednode/quizbox/games/quiz"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Play        key.Binding
	Multiplayer key.Binding
	Rules       key.Binding
	CreateRoom  key.Binding
	Start       key.Binding
	Answer      key.Binding
	Hint        key.Binding
	Pause       key.Binding
	Back        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Play: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "play"),
		),
		Multiplayer: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "play with friends"),
		),
		Rules: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rules"),
		),
		CreateRoom: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create room"),
		),
		Start: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "start"),
		),
		Answer: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "answer"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "50/50 hint"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// screenKeys adapts the bindings valid on one screen to help.KeyMap.
type screenKeys []key.Binding

func (k screenKeys) ShortHelp() []key.Binding {
	return k
}

func (k screenKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k}
}

func (k keyMap) forScreen(screen quiz.Screen) screenKeys {
	switch screen {
	case quiz.ScreenMultiplayer:
		return screenKeys{k.CreateRoom, k.Start, k.Back, k.Quit}
	case quiz.ScreenGame:
		return screenKeys{k.Answer, k.Hint, k.Pause, k.Back, k.Quit}
	case quiz.ScreenResults:
		return screenKeys{k.Play, k.Back, k.Quit}
	default:
		return screenKeys{k.Play, k.Multiplayer, k.Rules, k.Quit}
	}
}
