package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"apc-panel/internal/apc"
	"apc-panel/internal/ui/headless/render"
	"apc-panel/internal/ui/headless/theme"
)

const (
	rowLabelWidth         = 14
	rowValueWidth         = 20
	rowIndicatorWidth     = 4
	dialogHorizontalInset = 8
	errorDialogWidth      = 78
)

func RenderApp(state *State, rt Runtime) string {
	if state.Width == 0 {
		return "initializing..."
	}

	base := renderBase(state, rt)
	if state.ErrorModalText != "" {
		return renderModalOverlay(state, base, renderErrorDialog(state))
	}
	return base
}

func renderBase(state *State, rt Runtime) string {
	sections := []string{renderHeader(state, rt)}

	state.PanelView.SetContent(renderPanelBody(state, rt, state.PanelView.Width))
	alarm := rt.HasSnapshot && rt.View.Body != apc.BodyControlPanel
	sections = append(sections, render.Frame(state.PanelView.View(), state.Width, alarm, state.AnimPhase, theme.PanelStyle))

	if state.ShowLogs {
		sections = append(sections, renderLogPanel(state))
	}
	sections = append(sections, theme.HelpStyle.Render(state.HelpView.View(state.Keys)))
	return strings.Join(sections, "\n")
}

func renderHeader(state *State, rt Runtime) string {
	title := theme.TitleStyle.Render(apc.WindowTitle)
	if rt.APC != "" {
		title += theme.LabelStyle.Render(" · " + rt.APC)
	}
	if rt.BuildVersion != "" {
		title += theme.HelpStyle.Render(" (" + rt.BuildVersion + ")")
	}
	status := RenderStatus(rt.Status, rt.StatusKind)

	logsLabel := "Logs"
	if state.ShowLogs {
		logsLabel = "Hide Logs"
	}
	controls := RenderChromeButton(zoneLogsToggle, logsLabel, state.FocusID == zoneLogsToggle, state.HoverZone == zoneLogsToggle) +
		RenderChromeButton(zoneQuit, "Quit", state.FocusID == zoneQuit, state.HoverZone == zoneQuit)

	left := title + "  " + status
	gap := state.Width - lipgloss.Width(left) - lipgloss.Width(controls)
	if gap < 1 {
		left = render.TruncateDisplayWidth(left, max(state.Width-lipgloss.Width(controls)-1, 1))
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + controls
}

func renderPanelBody(state *State, rt Runtime, width int) string {
	if !rt.HasSnapshot {
		return theme.HelpStyle.Render("Waiting for APC data...")
	}
	if rt.View.Notice != nil {
		return renderNotice(state, *rt.View.Notice, width)
	}

	var blocks []string
	if len(rt.View.LockNotice) > 0 {
		blocks = append(blocks, renderTextLines(rt.View.LockNotice))
	}
	for _, section := range rt.View.Sections {
		blocks = append(blocks, renderSection(state, section, width))
	}
	return strings.Join(blocks, "\n\n")
}

func renderSection(state *State, section apc.Section, width int) string {
	header := theme.SectionStyle.Render(section.Title)
	if len(section.Buttons) > 0 {
		segments := make([]string, 0, len(section.Buttons))
		for _, button := range section.Buttons {
			segments = append(segments, renderPanelButton(state, button))
		}
		header += "\n" + RenderActionsRow(segments, width)
	}

	lines := []string{header}
	for _, row := range section.Rows {
		lines = append(lines, renderRow(state, row, width))
	}
	return strings.Join(lines, "\n")
}

func renderRow(state *State, row apc.Row, width int) string {
	label := render.TruncateDisplayWidth(row.Label, rowLabelWidth)
	parts := []string{render.PadRight(theme.LabelStyle.Render(label), rowLabelWidth)}

	if row.Progress != nil {
		parts = append(parts, RenderCellBar(state.CellBar, *row.Progress))
	}
	if row.Value.Value != "" {
		value := theme.TextStyle(row.Value).Render(row.Value.Value)
		parts = append(parts, render.PadRight(value, rowValueWidth))
	}
	if row.Indicator != nil {
		indicator := theme.TextStyle(*row.Indicator).Render(row.Indicator.Value)
		parts = append(parts, render.PadRight(indicator, rowIndicatorWidth))
	}

	var tooltip string
	buttons := make([]string, 0, len(row.Buttons))
	for _, button := range row.Buttons {
		buttons = append(buttons, renderPanelButton(state, button))
		if button.Tooltip != "" && (state.FocusID == button.ID || state.HoverZone == button.ID) {
			tooltip = button.Tooltip
		}
	}
	if len(buttons) > 0 {
		parts = append(parts, strings.Join(buttons, ""))
	}

	line := render.TruncateDisplayWidth(strings.Join(parts, " "), width)
	if tooltip != "" {
		line += "\n" + strings.Repeat(" ", rowLabelWidth+1) + theme.TooltipStyle.Render(tooltip)
	}
	return line
}

func renderNotice(state *State, notice apc.Notice, width int) string {
	var lines []string
	if notice.Title != "" {
		title := notice.Title
		if glyph := theme.Glyph(notice.Icon); glyph != "" {
			title = glyph + " " + title
		}
		lines = append(lines, theme.ErrorStyle.Render(title), "")
	}
	lines = append(lines, renderTextLines(notice.Lines))
	if notice.Button != nil {
		lines = append(lines, "", renderPanelButton(state, *notice.Button))
	}
	if notice.Footer != nil {
		lines = append(lines, "", theme.TextStyle(*notice.Footer).Render(notice.Footer.Value))
	}
	return lipgloss.NewStyle().
		Width(max(width, 1)).
		AlignHorizontal(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderTextLines(texts []apc.Text) string {
	lines := make([]string, 0, len(texts))
	for _, text := range texts {
		lines = append(lines, theme.TextStyle(text).Render(text.Value))
	}
	return strings.Join(lines, "\n")
}

func renderPanelButton(state *State, button apc.Button) string {
	return RenderButton(button, state.FocusID == button.ID, state.HoverZone == button.ID)
}

func renderLogPanel(state *State) string {
	check := "[ ] Debug"
	if state.DebugOn {
		check = "[x] Debug"
	}
	debug := RenderChromeButton(zoneDebugToggle, check, state.FocusID == zoneDebugToggle, state.HoverZone == zoneDebugToggle)

	followHint := theme.HelpStyle.Render("ctrl+f follow")
	toolbar := lipgloss.JoinHorizontal(lipgloss.Center, theme.TitleStyle.Render("Logs"), " ", debug, " ", followHint)
	withBar := WithScrollBar(state.LogView.View(), state.LogView.Width, state.LogView.Height, state.LogView.ScrollPercent())

	panel := render.Frame(toolbar+"\n"+withBar, state.Width, false, state.AnimPhase, theme.PanelStyle)
	return zone.Mark(zoneLogPane, panel)
}

func renderErrorDialog(state *State) string {
	body := strings.Join([]string{
		theme.ErrorStyle.Render("Error"),
		state.ErrorModalText,
		theme.HelpStyle.Render("Press Enter or Esc to close"),
	}, "\n")

	return render.Frame(body, min(state.Width-dialogHorizontalInset, errorDialogWidth), false, state.AnimPhase, theme.PanelStyle)
}

func renderModalOverlay(state *State, base string, dialog string) string {
	faded := theme.ModalBackdrop.Render(base)
	overlay := lipgloss.Place(state.Width, state.Height, lipgloss.Center, lipgloss.Center, dialog)

	return faded + "\n" + overlay
}
