package config

import "testing"

func TestBuildEndpoints_NormalizeAPIBaseURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{name: "root host", base: "http://127.0.0.1:8090", want: "http://127.0.0.1:8090/api"},
		{name: "already api", base: "http://127.0.0.1:8090/api", want: "http://127.0.0.1:8090/api"},
		{name: "api with trailing", base: "http://127.0.0.1:8090/api/", want: "http://127.0.0.1:8090/api"},
		{name: "pasted snapshot endpoint", base: "http://127.0.0.1:8090/api/apc/engineering", want: "http://127.0.0.1:8090/api"},
		{name: "pasted events endpoint", base: "http://127.0.0.1:8090/api/apc/engineering/events", want: "http://127.0.0.1:8090/api"},
		{name: "query fragment dropped", base: "https://example.com/anything?x=1#y", want: "https://example.com/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints, err := BuildEndpoints(tt.base, "bridge")
			if err != nil {
				t.Fatalf("BuildEndpoints failed: %v", err)
			}
			if endpoints.BaseURL != tt.want {
				t.Fatalf("BaseURL = %q, want %q", endpoints.BaseURL, tt.want)
			}
			if endpoints.SnapshotURL != tt.want+"/apc/bridge" {
				t.Fatalf("SnapshotURL = %q", endpoints.SnapshotURL)
			}
			if endpoints.EventsURL != tt.want+"/apc/bridge/events" {
				t.Fatalf("EventsURL = %q", endpoints.EventsURL)
			}
			if endpoints.ActURL != tt.want+"/apc/bridge/act" {
				t.Fatalf("ActURL = %q", endpoints.ActURL)
			}
		})
	}
}

func TestBuildEndpoints_EscapesRef(t *testing.T) {
	endpoints, err := BuildEndpoints("https://example.com", " /Medbay APC/ ")
	if err != nil {
		t.Fatalf("BuildEndpoints failed: %v", err)
	}
	if endpoints.SnapshotURL != "https://example.com/api/apc/Medbay%20APC" {
		t.Fatalf("SnapshotURL = %q", endpoints.SnapshotURL)
	}
}

func TestBuildEndpoints_InvalidInput(t *testing.T) {
	tests := []struct {
		base string
		ref  string
	}{
		{base: "ftp://example.com", ref: "bridge"},
		{base: "ws://example.com", ref: "bridge"},
		{base: "file:///tmp/apc", ref: "bridge"},
		{base: "example.com", ref: "bridge"},
		{base: "https://example.com", ref: "  "},
	}
	for _, tt := range tests {
		t.Run(tt.base+"|"+tt.ref, func(t *testing.T) {
			if _, err := BuildEndpoints(tt.base, tt.ref); err == nil {
				t.Fatalf("expected error for %q %q", tt.base, tt.ref)
			}
		})
	}
}

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "snapshot file alone", opts: Options{SnapshotFile: "apc.json"}},
		{name: "backend and ref", opts: Options{BaseURL: "https://example.com", APC: "bridge"}},
		{name: "missing base", opts: Options{APC: "bridge"}, wantErr: true},
		{name: "missing ref", opts: Options{BaseURL: "https://example.com"}, wantErr: true},
		{name: "blank", opts: Options{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOptions_Flags(t *testing.T) {
	opts, err := ParseOptions([]string{"--base-url", "https://example.com", "--apc", "bridge", "--headless"})
	if err != nil {
		t.Fatalf("ParseOptions() error = %v", err)
	}
	if opts.BaseURL != "https://example.com" || opts.APC != "bridge" || !opts.Headless {
		t.Fatalf("opts = %#v", opts)
	}
	if opts.OfflineMode() {
		t.Fatalf("OfflineMode() = true without snapshot file")
	}
}
