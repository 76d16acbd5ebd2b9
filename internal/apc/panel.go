package apc

import (
	"fmt"
)

const (
	buttonBreaker  = "power-breaker"
	buttonCharge   = "power-charge"
	buttonMalf     = "misc-malfunction"
	buttonOverload = "misc-overload"
	buttonCover    = "misc-cover"
	buttonReboot   = "failure-reboot"

	coverTooltip = "APC cover can be pried open with a crowbar."
)

func buildControlPanel(s Snapshot) View {
	locked := s.InterfaceLocked()
	view := View{Body: BodyControlPanel}
	if s.Emagged {
		view.LockNotice = []Text{
			{Value: "Fault in ID authenticator.", Color: ColorBad, Large: true},
			{Value: "Please contact maintenance for service.", Color: ColorBad},
		}
	}
	view.Sections = []Section{
		powerStatusSection(s, locked),
		powerChannelsSection(s, locked),
		miscSection(s, locked),
	}
	return view
}

func powerStatusSection(s Snapshot, locked bool) Section {
	external := PowerStatusFor(s.ExternalPower)
	charging := PowerStatusFor(s.ChargingStatus)

	breaker := Button{
		ID:       buttonBreaker,
		Icon:     "times",
		Label:    "Off",
		Color:    ColorBad,
		Selected: bool(s.IsOperating) && !locked,
		Disabled: locked,
		Action:   Action{Name: ActionBreaker},
	}
	if s.IsOperating {
		breaker.Icon = "power-off"
		breaker.Label = "On"
		breaker.Color = ColorDefault
	}

	charge := Button{
		ID:       buttonCharge,
		Icon:     "times",
		Label:    "Off",
		Selected: bool(s.ChargeMode),
		Disabled: locked,
		Action:   Action{Name: ActionCharge},
	}
	if s.ChargeMode {
		charge.Icon = "sync"
		charge.Label = "Auto"
	}

	return Section{
		Title: "Power Status",
		Rows: []Row{
			{
				Key:     "main-breaker",
				Label:   "Main Breaker",
				Value:   Text{Value: "[ " + external.ExternalPowerText + " ]", Color: external.Color},
				Buttons: []Button{breaker},
			},
			{
				Key:      "power-cell",
				Label:    "Power Cell",
				Progress: &Progress{Value: s.PowerCellStatus / 100, Color: ColorGood},
			},
			{
				Key:     "charge-mode",
				Label:   "Charge Mode",
				Value:   Text{Value: "[ " + charging.ChargingText + " ]", Color: charging.Color},
				Buttons: []Button{charge},
			},
		},
	}
}

func powerChannelsSection(s Snapshot, locked bool) Section {
	rows := make([]Row, 0, len(s.PowerChannels)+1)
	for i, channel := range s.PowerChannels {
		rows = append(rows, channelRow(s, i, channel, locked))
	}

	total := watts(s.TotalLoad)
	if s.TotalCharging != 0 {
		total += fmt.Sprintf(" (+ %s charging)", watts(s.TotalCharging))
	}
	rows = append(rows, Row{
		Key:   "total-load",
		Label: "Total Load",
		Value: Text{Value: total, Bold: true},
	})

	return Section{Title: "Power Channels", Rows: rows}
}

// ChannelIndicator is the On/Off readout for a channel status code. It is a
// plain threshold and ignores the pChan sentinels.
func ChannelIndicator(status Code) Text {
	if status >= 2 {
		return Text{Value: "On", Color: ColorGood}
	}
	return Text{Value: "Off", Color: ColorBad}
}

func channelRow(s Snapshot, index int, channel Channel, locked bool) Row {
	indicator := ChannelIndicator(channel.Status)
	status := channel.Status
	id := func(mode string) string {
		return fmt.Sprintf("channel-%d-%s", index, mode)
	}

	// Off has no unconditional branch, unlike Auto and On.
	return Row{
		Key:       channel.Title,
		Label:     channel.Title,
		Value:     Text{Value: watts(channel.PowerLoad)},
		Indicator: &indicator,
		Buttons: []Button{
			{
				ID:       id("auto"),
				Icon:     "sync",
				Label:    "Auto",
				Selected: (!locked && status == s.ChanOffAuto) || status == s.ChanOnAuto,
				Disabled: locked,
				Action:   Action{Name: ActionChannel, Payload: channel.TopicParams.Auto},
			},
			{
				ID:       id("on"),
				Icon:     "power-off",
				Label:    "On",
				Selected: (!locked && status == s.ChanOffTemp) || status == s.ChanOn,
				Disabled: locked,
				Action:   Action{Name: ActionChannel, Payload: channel.TopicParams.On},
			},
			{
				ID:       id("off"),
				Icon:     "times",
				Label:    "Off",
				Selected: !locked && status == s.ChanOff,
				Disabled: locked,
				Action:   Action{Name: ActionChannel, Payload: channel.TopicParams.Off},
			},
		},
	}
}

func miscSection(s Snapshot, locked bool) Section {
	section := Section{Title: "Misc"}
	if s.SiliconUser {
		if malf, ok := MalfunctionFor(s.MalfStatus); ok {
			section.Buttons = append(section.Buttons, Button{
				ID:     buttonMalf,
				Icon:   malf.Icon,
				Label:  malf.Content,
				Color:  ColorBad,
				Action: Action{Name: malf.Action},
			})
		}
		section.Buttons = append(section.Buttons, Button{
			ID:     buttonOverload,
			Icon:   "lightbulb-o",
			Label:  "Overload",
			Action: Action{Name: ActionOverload},
		})
	}

	cover := Button{
		ID:       buttonCover,
		Icon:     "unlock",
		Label:    "Disengaged",
		Tooltip:  coverTooltip,
		Disabled: locked,
		Action:   Action{Name: ActionCover},
	}
	if s.CoverLocked {
		cover.Icon = "lock"
		cover.Label = "Engaged"
	}
	section.Rows = []Row{{Key: "cover-lock", Label: "Cover Lock", Buttons: []Button{cover}}}
	return section
}
