package apc

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func secondsPtr(v float64) *float64 { return &v }

func baseSnapshot() Snapshot {
	return Snapshot{
		ExternalPower:   2,
		ChargingStatus:  1,
		IsOperating:     true,
		ChargeMode:      true,
		PowerCellStatus: 75,
		TotalLoad:       1200,
		ChanOff:         0,
		ChanOffTemp:     1,
		ChanOffAuto:     2,
		ChanOn:          3,
		ChanOnAuto:      4,
		PowerChannels: []Channel{
			{
				Title:     "Equipment",
				Status:    4,
				PowerLoad: 700,
				TopicParams: TopicParams{
					Auto: json.RawMessage(`{"eqp":3}`),
					On:   json.RawMessage(`{"eqp":2}`),
					Off:  json.RawMessage(`{"eqp":1}`),
				},
			},
			{Title: "Lighting", Status: 0, PowerLoad: 500},
		},
	}
}

func findRow(t *testing.T, view View, key string) Row {
	t.Helper()
	for _, section := range view.Sections {
		for _, row := range section.Rows {
			if row.Key == key {
				return row
			}
		}
	}
	t.Fatalf("row %q not found", key)
	return Row{}
}

func mustButton(t *testing.T, view View, id string) Button {
	t.Helper()
	button, ok := view.FindButton(id)
	if !ok {
		t.Fatalf("button %q not found", id)
	}
	return button
}

func TestSelectBody_Priority(t *testing.T) {
	tests := []struct {
		name      string
		gridCheck bool
		failTime  *float64
		want      Body
	}{
		{name: "grid check wins over failure", gridCheck: true, failTime: secondsPtr(30), want: BodyGridCheck},
		{name: "grid check alone", gridCheck: true, want: BodyGridCheck},
		{name: "failure timer", failTime: secondsPtr(12), want: BodyFailure},
		{name: "no flags", want: BodyControlPanel},
		// failTime 0 is falsy, so the panel stays up instead of the failure overlay.
		{name: "zero fail time is not a failure", failTime: secondsPtr(0), want: BodyControlPanel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			s.GridCheck = Flag(tt.gridCheck)
			s.FailTime = tt.failTime
			if got := SelectBody(s); got != tt.want {
				t.Fatalf("SelectBody() = %v, want %v", got, tt.want)
			}
			if got := Build(s).Body; got != tt.want {
				t.Fatalf("Build().Body = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectBody_ZeroFailTimeLockedShowsPanel(t *testing.T) {
	s := Snapshot{FailTime: secondsPtr(0), Locked: true}
	view := Build(s)
	if view.Body != BodyControlPanel || view.Notice != nil {
		t.Fatalf("Build() body = %v notice = %#v, want control panel", view.Body, view.Notice)
	}
}

func TestPowerStatusRows_UseTableAndFallback(t *testing.T) {
	tests := []struct {
		code         Code
		wantColor    Color
		wantExternal string
		wantCharging string
	}{
		{code: 2, wantColor: ColorGood, wantExternal: "[ External Power ]", wantCharging: "[ Fully Charged ]"},
		{code: 1, wantColor: ColorAverage, wantExternal: "[ Low External Power ]", wantCharging: "[ Charging ]"},
		{code: 0, wantColor: ColorBad, wantExternal: "[ No External Power ]", wantCharging: "[ Not Charging ]"},
		{code: 7, wantColor: ColorBad, wantExternal: "[ No External Power ]", wantCharging: "[ Not Charging ]"},
		{code: -1, wantColor: ColorBad, wantExternal: "[ No External Power ]", wantCharging: "[ Not Charging ]"},
		{code: 1.5, wantColor: ColorBad, wantExternal: "[ No External Power ]", wantCharging: "[ Not Charging ]"},
		{code: UnknownCode(), wantColor: ColorBad, wantExternal: "[ No External Power ]", wantCharging: "[ Not Charging ]"},
	}
	for _, tt := range tests {
		s := baseSnapshot()
		s.ExternalPower = tt.code
		s.ChargingStatus = tt.code
		view := Build(s)

		breaker := findRow(t, view, "main-breaker")
		if breaker.Value.Value != tt.wantExternal || breaker.Value.Color != tt.wantColor {
			t.Fatalf("code %v: main breaker = %#v", tt.code, breaker.Value)
		}
		charge := findRow(t, view, "charge-mode")
		if charge.Value.Value != tt.wantCharging || charge.Value.Color != tt.wantColor {
			t.Fatalf("code %v: charge mode = %#v", tt.code, charge.Value)
		}
	}
}

func TestLockedDisablesEveryControl(t *testing.T) {
	s := baseSnapshot()
	s.Locked = true
	view := Build(s)

	buttons := view.Buttons()
	if len(buttons) != 1+1+3*len(s.PowerChannels)+1 {
		t.Fatalf("len(Buttons()) = %d", len(buttons))
	}
	for _, button := range buttons {
		if !button.Disabled {
			t.Fatalf("button %q enabled while locked", button.ID)
		}
	}

	called := false
	dispatcher := DispatcherFunc(func(context.Context, string, json.RawMessage) error {
		called = true
		return nil
	})
	for _, button := range buttons {
		if err := Dispatch(context.Background(), dispatcher, button); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
	}
	if called {
		t.Fatalf("disabled buttons must not dispatch")
	}
}

func TestSiliconUserBypassesLock(t *testing.T) {
	s := baseSnapshot()
	s.Locked = true
	s.SiliconUser = true
	view := Build(s)
	for _, button := range view.Buttons() {
		if button.Disabled {
			t.Fatalf("button %q disabled for silicon user", button.ID)
		}
	}
	if got := mustButton(t, view, buttonBreaker); !got.Selected {
		t.Fatalf("breaker should be selected while operating and unlocked")
	}
}

func TestBreakerAndChargeButtons(t *testing.T) {
	s := baseSnapshot()
	s.IsOperating = false
	s.ChargeMode = false
	view := Build(s)

	breaker := mustButton(t, view, buttonBreaker)
	if breaker.Label != "Off" || breaker.Icon != "times" || breaker.Color != ColorBad || breaker.Selected {
		t.Fatalf("breaker off = %#v", breaker)
	}
	if breaker.Action.Name != ActionBreaker || breaker.Action.Payload != nil {
		t.Fatalf("breaker action = %#v", breaker.Action)
	}
	charge := mustButton(t, view, buttonCharge)
	if charge.Label != "Off" || charge.Selected || charge.Action.Name != ActionCharge {
		t.Fatalf("charge off = %#v", charge)
	}

	s.IsOperating = true
	s.ChargeMode = true
	s.Locked = true
	view = Build(s)
	breaker = mustButton(t, view, buttonBreaker)
	if breaker.Label != "On" || breaker.Icon != "power-off" || breaker.Selected {
		t.Fatalf("breaker on while locked = %#v", breaker)
	}
	charge = mustButton(t, view, buttonCharge)
	if charge.Label != "Auto" || !charge.Selected {
		t.Fatalf("charge auto while locked = %#v", charge)
	}
}

func TestPowerCellProgressIsNotClamped(t *testing.T) {
	for _, cell := range []float64{0, 42, 100, 150} {
		s := baseSnapshot()
		s.PowerCellStatus = cell
		row := findRow(t, Build(s), "power-cell")
		if row.Progress == nil || row.Progress.Value != cell/100 {
			t.Fatalf("cell %v: progress = %#v", cell, row.Progress)
		}
	}
}

func TestChannelIndicatorThreshold(t *testing.T) {
	for status, want := range map[Code]string{-1: "Off", 0: "Off", 1: "Off", 1.5: "Off", 2: "On", 2.5: "On", 3: "On", 9: "On"} {
		if got := ChannelIndicator(status).Value; got != want {
			t.Fatalf("ChannelIndicator(%v) = %q, want %q", status, got, want)
		}
	}
	if got := ChannelIndicator(UnknownCode()).Value; got != "Off" {
		t.Fatalf("ChannelIndicator(unknown) = %q, want Off", got)
	}
}

func TestChannelRow_LightingExample(t *testing.T) {
	s := Snapshot{
		ChanOn: 3,
		PowerChannels: []Channel{{
			Title:     "Lighting",
			Status:    3,
			PowerLoad: 500,
			TopicParams: TopicParams{
				Auto: json.RawMessage(`{"c":0}`),
				On:   json.RawMessage(`{"c":1}`),
				Off:  json.RawMessage(`{"c":2}`),
			},
		}},
	}
	view := Build(s)
	row := findRow(t, view, "Lighting")
	if row.Indicator == nil || row.Indicator.Value != "On" || row.Indicator.Color != ColorGood {
		t.Fatalf("indicator = %#v", row.Indicator)
	}
	if row.Value.Value != "500 W" {
		t.Fatalf("load = %q", row.Value.Value)
	}
	on := mustButton(t, view, "channel-0-on")
	if !on.Selected {
		t.Fatalf("On button should be selected")
	}
	if string(on.Action.Payload) != `{"c":1}` || on.Action.Name != ActionChannel {
		t.Fatalf("On action = %s %s", on.Action.Name, on.Action.Payload)
	}
	if off := mustButton(t, view, "channel-0-off"); string(off.Action.Payload) != `{"c":2}` {
		t.Fatalf("Off payload = %s", off.Action.Payload)
	}
}

func TestChannelSelection_AsymmetricLockBranches(t *testing.T) {
	tests := []struct {
		name        string
		status      Code
		locked      bool
		auto        bool
		on          bool
		off         bool
		indicatorOn bool
	}{
		{name: "off unlocked", status: 0, off: true},
		{name: "off locked", status: 0, locked: true},
		{name: "off temp unlocked", status: 1, on: true},
		{name: "off temp locked", status: 1, locked: true},
		{name: "off auto unlocked", status: 2, auto: true, indicatorOn: true},
		{name: "off auto locked", status: 2, locked: true, indicatorOn: true},
		{name: "on unlocked", status: 3, on: true, indicatorOn: true},
		{name: "on locked", status: 3, locked: true, on: true, indicatorOn: true},
		{name: "on auto unlocked", status: 4, auto: true, indicatorOn: true},
		{name: "on auto locked", status: 4, locked: true, auto: true, indicatorOn: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			s.Locked = Flag(tt.locked)
			s.PowerChannels = []Channel{{Title: "Environment", Status: tt.status}}
			view := Build(s)
			if got := mustButton(t, view, "channel-0-auto").Selected; got != tt.auto {
				t.Fatalf("auto selected = %v, want %v", got, tt.auto)
			}
			if got := mustButton(t, view, "channel-0-on").Selected; got != tt.on {
				t.Fatalf("on selected = %v, want %v", got, tt.on)
			}
			if got := mustButton(t, view, "channel-0-off").Selected; got != tt.off {
				t.Fatalf("off selected = %v, want %v", got, tt.off)
			}
			row := findRow(t, view, "Environment")
			if got := row.Indicator.Value == "On"; got != tt.indicatorOn {
				t.Fatalf("indicator = %q", row.Indicator.Value)
			}
		})
	}
}

func TestChannelOrderIsPreserved(t *testing.T) {
	s := baseSnapshot()
	s.PowerChannels = []Channel{{Title: "Zeta"}, {Title: "Alpha"}, {Title: "Mid"}}
	rows := Build(s).Sections[1].Rows
	got := []string{rows[0].Label, rows[1].Label, rows[2].Label, rows[3].Label}
	want := []string{"Zeta", "Alpha", "Mid", "Total Load"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
}

func TestTotalLoadLine(t *testing.T) {
	s := baseSnapshot()
	row := findRow(t, Build(s), "total-load")
	if row.Value.Value != "1200 W" || !row.Value.Bold {
		t.Fatalf("total load = %#v", row.Value)
	}

	s.TotalCharging = 350.5
	row = findRow(t, Build(s), "total-load")
	if row.Value.Value != "1200 W (+ 350.5 W charging)" {
		t.Fatalf("total load charging = %q", row.Value.Value)
	}
}

func TestMiscSection_SiliconButtons(t *testing.T) {
	s := baseSnapshot()
	s.MalfStatus = 1
	view := Build(s)
	if len(view.Sections[2].Buttons) != 0 {
		t.Fatalf("non-silicon user sees header buttons: %#v", view.Sections[2].Buttons)
	}

	s.SiliconUser = true
	view = Build(s)
	header := view.Sections[2].Buttons
	if len(header) != 2 || header[0].Action.Name != ActionHack || header[0].Label != "Override Programming" || header[1].Action.Name != ActionOverload {
		t.Fatalf("silicon header buttons = %#v", header)
	}

	for _, code := range []Code{0, 1.5, 2, 3, 4, UnknownCode()} {
		s.MalfStatus = code
		header = Build(s).Sections[2].Buttons
		if len(header) != 1 || header[0].ID != buttonOverload {
			t.Fatalf("malfStatus %v: header buttons = %#v", code, header)
		}
	}
}

func TestCoverLockButton(t *testing.T) {
	s := baseSnapshot()
	cover := mustButton(t, Build(s), buttonCover)
	if cover.Label != "Disengaged" || cover.Icon != "unlock" || cover.Action.Name != ActionCover {
		t.Fatalf("cover = %#v", cover)
	}
	if !strings.Contains(cover.Tooltip, "crowbar") {
		t.Fatalf("cover tooltip = %q", cover.Tooltip)
	}
	s.CoverLocked = true
	if cover = mustButton(t, Build(s), buttonCover); cover.Label != "Engaged" || cover.Icon != "lock" {
		t.Fatalf("cover engaged = %#v", cover)
	}
}

func TestLockNoticeOnlyWhenEmagged(t *testing.T) {
	s := baseSnapshot()
	if notice := Build(s).LockNotice; notice != nil {
		t.Fatalf("LockNotice = %#v, want nil", notice)
	}
	s.Emagged = true
	notice := Build(s).LockNotice
	if len(notice) != 2 || notice[0].Value != "Fault in ID authenticator." || notice[0].Color != ColorBad {
		t.Fatalf("LockNotice = %#v", notice)
	}
}

func TestGridCheckNoticeHasNoActions(t *testing.T) {
	s := baseSnapshot()
	s.GridCheck = true
	view := Build(s)
	if view.Notice == nil || !strings.Contains(view.Notice.Lines[0].Value, "grid check in effect") {
		t.Fatalf("notice = %#v", view.Notice)
	}
	if len(view.Buttons()) != 0 || len(view.Sections) != 0 {
		t.Fatalf("grid check must not expose controls")
	}
}

func TestFailureNoticeRebootControl(t *testing.T) {
	tests := []struct {
		name       string
		locked     bool
		silicon    bool
		wantButton bool
	}{
		{name: "unlocked", wantButton: true},
		{name: "locked", locked: true},
		{name: "locked silicon", locked: true, silicon: true, wantButton: true},
		{name: "silicon", silicon: true, wantButton: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot{FailTime: secondsPtr(45), Locked: Flag(tt.locked), SiliconUser: Flag(tt.silicon)}
			view := Build(s)
			if view.Body != BodyFailure {
				t.Fatalf("Body = %v", view.Body)
			}
			if got := view.Notice.Lines[2].Value; got != "Automatic reboot in 45 seconds..." {
				t.Fatalf("countdown = %q", got)
			}
			if tt.wantButton {
				if view.Notice.Button == nil || view.Notice.Button.Action.Name != ActionReboot || view.Notice.Footer != nil {
					t.Fatalf("notice = %#v", view.Notice)
				}
				return
			}
			if view.Notice.Button != nil || view.Notice.Footer == nil || !strings.Contains(view.Notice.Footer.Value, "Swipe an ID card") {
				t.Fatalf("notice = %#v", view.Notice)
			}
		})
	}
}
