package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFollowTarget(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "search.raxml.log")
	if err := os.WriteFile(logPath, []byte("Final LogLikelihood: -1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		dir     string
		want    string
		wantErr bool
	}{
		{
			name: "explicit_file",
			args: []string{logPath},
			want: logPath,
		},
		{
			name: "dir_flag",
			args: nil,
			dir:  dir,
			want: logPath,
		},
		{
			name:    "both",
			args:    []string{logPath},
			dir:     dir,
			wantErr: true,
		},
		{
			name:    "neither",
			args:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			followDir = tt.dir
			defer func() { followDir = "" }()

			got, err := followTarget(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("followTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("followTarget() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"extract", "rfdist", "scan", "follow", "completion"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("command %q not registered: %v", name, err)
		}
	}
}
