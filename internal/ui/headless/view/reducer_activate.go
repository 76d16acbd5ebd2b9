package view

type ActivateEffect int

const (
	ActivateEffectNone ActivateEffect = iota
	ActivateEffectDispatch
	ActivateEffectRequestQuit
	ActivateEffectDebugLevelChanged
)

// ReduceActivate presses the focused control. Host controls are handled
// here; panel buttons are returned as ActivateEffectDispatch for the model.
func ReduceActivate(state State, rt Runtime) (State, ActivateEffect) {
	switch state.FocusID {
	case zoneLogsToggle:
		state = state.withLogsToggled()
		return ReconcileFocus(state, rt), ActivateEffectNone
	case zoneDebugToggle:
		state.DebugOn = !state.DebugOn
		return state, ActivateEffectDebugLevelChanged
	case zoneQuit:
		return state, ActivateEffectRequestQuit
	}
	if !rt.HasSnapshot {
		return state, ActivateEffectNone
	}
	button, ok := rt.View.FindButton(state.FocusID)
	if !ok || button.Disabled {
		return state, ActivateEffectNone
	}
	return state, ActivateEffectDispatch
}
