package main

import (
	"testing"

	"apc-panel/internal/config"
)

func TestInstanceKey(t *testing.T) {
	tests := []struct {
		name string
		opts config.Options
		want string
	}{
		{name: "apc ref", opts: config.Options{APC: "Engineering APC"}, want: "engineering_apc"},
		{name: "snapshot file", opts: config.Options{APC: "ignored", SnapshotFile: "/tmp/apc.json"}, want: "file-_tmp_apc_json"},
		{name: "empty", opts: config.Options{}, want: "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := instanceKey(tt.opts); got != tt.want {
				t.Fatalf("instanceKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
