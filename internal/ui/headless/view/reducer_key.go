package view

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyEffect int

const (
	KeyEffectNone KeyEffect = iota
	KeyEffectRequestQuit
	KeyEffectActivateFocused
)

func ReduceKey(state State, msg tea.KeyMsg, rt Runtime) (State, KeyEffect) {
	if state.ErrorModalText != "" {
		if msg.String() == "esc" || key.Matches(msg, state.Keys.Activate) {
			state.ErrorModalText = ""
		}
		return state, KeyEffectNone
	}

	switch {
	case key.Matches(msg, state.Keys.Quit):
		return state, KeyEffectRequestQuit
	case key.Matches(msg, state.Keys.ToggleHelp):
		state.HelpView.ShowAll = !state.HelpView.ShowAll
		state.Resize()
	case key.Matches(msg, state.Keys.ToggleLogs):
		state = state.withLogsToggled()
		state = ReconcileFocus(state, rt)
	case key.Matches(msg, state.Keys.FollowLogs) && state.ShowLogs:
		state.FollowLogs = true
		state.LogView.GotoBottom()
	case key.Matches(msg, state.Keys.NextFocus):
		state = moveFocus(state, rt, 1)
	case key.Matches(msg, state.Keys.PrevFocus):
		state = moveFocus(state, rt, -1)
	case key.Matches(msg, state.Keys.Activate):
		return state, KeyEffectActivateFocused
	case key.Matches(msg, state.Keys.ScrollUp), key.Matches(msg, state.Keys.ScrollDown):
		state.PanelView, _ = state.PanelView.Update(msg)
	}
	return state, KeyEffectNone
}
