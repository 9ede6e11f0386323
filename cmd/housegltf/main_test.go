package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/logger"
)

func TestCmdExportExitCodes(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"ok", []string{"-o", filepath.Join(dir, "house.glb")}, 0},
		{"geometry only", []string{"-no-textures", "-o", filepath.Join(dir, "bare.glb")}, 0},
		{"missing asset dir", []string{"-assets", filepath.Join(dir, "nope"), "-o", filepath.Join(dir, "x.glb")}, 1},
		{"unwritable output", []string{"-o", filepath.Join(dir, "missing", "house.glb")}, 1},
		{"bad flag", []string{"-bogus"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmdExport(tt.args); got != tt.want {
				t.Errorf("cmdExport(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}

	for _, name := range []string{"house.glb", "bare.glb"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
