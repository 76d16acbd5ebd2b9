package config

import (
	"errors"
	"net/url"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type Options struct {
	BaseURL      string `long:"base-url" env:"APC_BASE_URL" description:"Simulation backend base URL (e.g. https://station.example.com)"`
	Token        string `long:"token" env:"APC_TOKEN" description:"Bearer token for the simulation backend"`
	APC          string `long:"apc" env:"APC_REF" description:"Reference of the Area Power Controller to bind to"`
	SnapshotFile string `long:"snapshot-file" env:"APC_SNAPSHOT_FILE" description:"Render a snapshot JSON file instead of a live backend (reloaded on change)"`
	Headless     bool   `long:"headless" env:"APC_HEADLESS" description:"Run the terminal panel instead of the desktop window (GUI builds only)"`
	Debug        bool   `long:"debug" env:"APC_DEBUG" description:"Enable verbose debug output"`
}

type APIEndpoints struct {
	BaseURL     string
	SnapshotURL string
	EventsURL   string
	ActURL      string
}

func ParseOptions(args []string) (Options, error) {
	_ = godotenv.Load()
	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// OfflineMode reports whether the panel renders a local snapshot file.
func (o Options) OfflineMode() bool {
	return strings.TrimSpace(o.SnapshotFile) != ""
}

func ValidateRequired(opts Options) error {
	if opts.OfflineMode() {
		return nil
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		return errors.New("base URL is required (or set a snapshot file)")
	}
	if strings.TrimSpace(opts.APC) == "" {
		return errors.New("APC reference is required")
	}
	return nil
}

func BuildEndpoints(rawBaseURL string, apcRef string) (APIEndpoints, error) {
	ref := strings.Trim(strings.TrimSpace(apcRef), "/")
	if ref == "" {
		return APIEndpoints{}, errors.New("APC reference is required")
	}
	apiBaseURL, err := buildAPIBaseURL(rawBaseURL)
	if err != nil {
		return APIEndpoints{}, err
	}
	apcURL := apiBaseURL + "/apc/" + url.PathEscape(ref)
	return APIEndpoints{
		BaseURL:     apiBaseURL,
		SnapshotURL: apcURL,
		EventsURL:   apcURL + "/events",
		ActURL:      apcURL + "/act",
	}, nil
}

func buildAPIBaseURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	parsed, err := url.Parse(value)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("expected absolute URL like https://example.com")
	}
	if !strings.EqualFold(parsed.Scheme, "http") && !strings.EqualFold(parsed.Scheme, "https") {
		return "", errors.New("base URL scheme must be http or https")
	}

	// Pasted endpoint URLs collapse to the API root.
	parsed.Path = "/api"
	parsed.RawPath = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""

	return strings.TrimRight(parsed.String(), "/"), nil
}
