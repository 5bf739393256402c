package gamedata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aspira-app/aspira-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestLoadDefaults(t *testing.T) {
	data, err := Load("", testLogger(t))
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(data.Levels) == 0 {
		t.Fatalf("built-in table must not be empty")
	}
	seen := map[int]bool{}
	for _, lt := range data.Levels {
		if lt.Level < 1 {
			t.Fatalf("levels start at 1, got %d", lt.Level)
		}
		if seen[lt.Level] {
			t.Fatalf("duplicate level %d in defaults", lt.Level)
		}
		seen[lt.Level] = true
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gamedata.yaml")
	content := "levels:\n  - level: 1\n    xp_threshold: 50\n  - level: 2\n    xp_threshold: 120\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	data, err := Load(path, testLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.Levels) != 2 {
		t.Fatalf("want 2 levels, got %d", len(data.Levels))
	}
	if data.Levels[1].XPThreshold != 120 {
		t.Fatalf("threshold: want=120 got=%d", data.Levels[1].XPThreshold)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		content string
	}{
		{name: "empty levels", content: "levels: []\n"},
		{name: "duplicate level", content: "levels:\n  - level: 1\n    xp_threshold: 10\n  - level: 1\n    xp_threshold: 20\n"},
		{name: "level below one", content: "levels:\n  - level: 0\n    xp_threshold: 10\n"},
		{name: "negative threshold", content: "levels:\n  - level: 1\n    xp_threshold: -5\n"},
		{name: "not yaml", content: "{{{{"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write file: %v", err)
			}
			if _, err := Load(path, testLogger(t)); err == nil {
				t.Fatalf("expected load to fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), testLogger(t)); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
