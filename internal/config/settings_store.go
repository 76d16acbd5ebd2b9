package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

type PanelSettings struct {
	BaseURL string `json:"base_url"`
	Token   string `json:"token"`
	APC     string `json:"apc"`
	Debug   bool   `json:"debug"`
}

func SettingsPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apc-panel", "settings.json"), nil
}

func LoadSettings() (PanelSettings, error) {
	path, err := SettingsPath()
	if err != nil {
		return PanelSettings{}, err
	}
	return loadSettingsFrom(path)
}

func SaveSettings(settings PanelSettings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return saveSettingsTo(path, settings)
}

func loadSettingsFrom(path string) (PanelSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PanelSettings{}, err
	}
	var settings PanelSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return PanelSettings{}, err
	}
	return settings, nil
}

func saveSettingsTo(path string, settings PanelSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// MergeOptionsWithSettings fills blanks in the CLI options from saved
// settings. A snapshot file run never picks up a saved backend.
func MergeOptionsWithSettings(cli Options, saved PanelSettings) Options {
	if cli.OfflineMode() {
		if !cli.Debug {
			cli.Debug = saved.Debug
		}
		return cli
	}
	if strings.TrimSpace(cli.BaseURL) == "" {
		cli.BaseURL = saved.BaseURL
	}
	if strings.TrimSpace(cli.Token) == "" {
		cli.Token = saved.Token
	}
	if strings.TrimSpace(cli.APC) == "" {
		cli.APC = saved.APC
	}
	if !cli.Debug {
		cli.Debug = saved.Debug
	}
	return cli
}

func SettingsFromOptions(opts Options) PanelSettings {
	return PanelSettings{
		BaseURL: strings.TrimSpace(opts.BaseURL),
		Token:   strings.TrimSpace(opts.Token),
		APC:     strings.TrimSpace(opts.APC),
		Debug:   opts.Debug,
	}
}
