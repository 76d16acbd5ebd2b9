package view

import "slices"

// Focusables lists focus targets in tab order: enabled panel buttons, then
// the host controls. Disabled buttons are never focusable.
func Focusables(state State, rt Runtime) []string {
	var out []string
	if rt.HasSnapshot {
		for _, button := range rt.View.Buttons() {
			if !button.Disabled {
				out = append(out, button.ID)
			}
		}
	}
	return append(out, chromeControls(state.ShowLogs)...)
}

// ReconcileFocus keeps focus on the same control across snapshots and moves
// it to the first target when that control is gone or became disabled.
func ReconcileFocus(state State, rt Runtime) State {
	targets := Focusables(state, rt)
	if slices.Contains(targets, state.FocusID) {
		return state
	}
	state.FocusID = targets[0]
	return state
}

func moveFocus(state State, rt Runtime, delta int) State {
	targets := Focusables(state, rt)
	current := slices.Index(targets, state.FocusID)
	if current < 0 {
		state.FocusID = targets[0]
		return state
	}
	n := len(targets)
	state.FocusID = targets[((current+delta)%n+n)%n]
	return state
}
