package headless

import (
	"path/filepath"

	zone "github.com/lrstanley/bubblezone"

	headlessview "apc-panel/internal/ui/headless/view"
)

// runtimeView projects mutable runtime state into the render DTO consumed by the view package.
func (m *headlessModel) runtimeView() headlessview.Runtime {
	return headlessview.Runtime{
		BuildVersion: m.buildVersion,
		APC:          m.panelRef(),
		Status:       m.status,
		StatusKind:   m.kind,
		HasSnapshot:  m.hasSnapshot,
		View:         m.view,
	}
}

// View is the Bubble Tea render entrypoint; rendering is delegated to the pure view package.
func (m *headlessModel) View() string {
	return zone.Scan(headlessview.RenderApp(&m.ui, m.runtimeView()))
}

func (m *headlessModel) panelRef() string {
	if m.opts.OfflineMode() {
		return filepath.Base(m.opts.SnapshotFile)
	}
	return m.opts.APC
}
