package view

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

type MouseEffect int

const (
	MouseEffectNone MouseEffect = iota
	MouseEffectActivateFocused
)

// ReduceMouse tracks hover, turns a left click on an enabled control into
// focus plus activation, and routes the wheel to the pane under the pointer.
func ReduceMouse(state State, msg tea.MouseMsg, rt Runtime) (State, tea.Cmd, MouseEffect) {
	if state.ErrorModalText != "" {
		return state, nil, MouseEffectNone
	}

	state.HoverZone = hoveredZone(state, msg, rt)
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		if state.HoverZone != "" && slices.Contains(Focusables(state, rt), state.HoverZone) {
			state.FocusID = state.HoverZone
			return state, nil, MouseEffectActivateFocused
		}
		return state, nil, MouseEffectNone
	}
	if !tea.MouseEvent(msg).IsWheel() {
		return state, nil, MouseEffectNone
	}

	var cmd tea.Cmd
	if state.ShowLogs && inZone(zoneLogPane, msg) {
		state.LogView, cmd = state.LogView.Update(msg)
		state.FollowLogs = state.LogView.AtBottom()
		return state, cmd, MouseEffectNone
	}
	state.PanelView, cmd = state.PanelView.Update(msg)
	return state, cmd, MouseEffectNone
}

func hoveredZone(state State, msg tea.MouseMsg, rt Runtime) string {
	ids := chromeControls(state.ShowLogs)
	if rt.HasSnapshot {
		for _, button := range rt.View.Buttons() {
			ids = append(ids, button.ID)
		}
	}
	for _, id := range ids {
		if inZone(id, msg) {
			return id
		}
	}
	return ""
}

func inZone(id string, msg tea.MouseMsg) bool {
	info := zone.Get(id)
	return info != nil && info.InBounds(msg)
}
