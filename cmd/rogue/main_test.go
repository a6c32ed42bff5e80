package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-rogue/internal/config"
	"github.com/vovakirdan/tui-rogue/internal/rogue"
	"github.com/vovakirdan/tui-rogue/internal/storage"
)

// execute runs the CLI in an isolated home and working directory.
func execute(t *testing.T, e config.Env, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	if e.DBPath == "" {
		e.DBPath = filepath.Join(t.TempDir(), "runs.db")
	}

	root := newRootCmd(e)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigCommandJSON(t *testing.T) {
	out, err := execute(t, config.Env{}, "", "config", "--format", "json", "--seed", "42")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}

	var cfg rogue.GameConfig
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if cfg.Width != 80 || cfg.Height != 24 || cfg.Dungeon != "rogue" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("seed = %v, expected 42", cfg.Seed)
	}
}

func TestConfigCommandEnvSeed(t *testing.T) {
	seed := uint64(9)
	out, err := execute(t, config.Env{Seed: &seed}, "", "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "seed: 9") {
		t.Errorf("env seed missing from output:\n%s", out)
	}
}

func TestConfigCommandBadFormat(t *testing.T) {
	if _, err := execute(t, config.Env{}, "", "config", "--format", "toml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestConfigCommandRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "narrow.json")
	writeConfig(t, path, `{"width": 40}`)

	_, err := execute(t, config.Env{}, "", "config", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "screen width is too narrow") {
		t.Errorf("expected width error, got %v", err)
	}
}

func TestStylesCommand(t *testing.T) {
	out, err := execute(t, config.Env{}, "", "styles")
	if err != nil {
		t.Fatalf("styles failed: %v", err)
	}
	if !strings.Contains(out, "* rogue") {
		t.Errorf("output = %q", out)
	}
}

func TestScoresCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, config.Env{DBPath: db}, "", "scores")
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	if !strings.Contains(out, "No runs recorded yet.") {
		t.Errorf("output = %q", out)
	}

	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(storage.RunRecord{Player: "ann", Seed: 5, Style: "rogue", Level: 3, Gold: 120, Turns: 400, EndReason: storage.EndQuit}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	out, err = execute(t, config.Env{DBPath: db}, "", "scores", "--seed", "5")
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	if !strings.Contains(out, "Runs of seed 5") || !strings.Contains(out, "ann") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "1 runs, best gold 120, deepest level 3") {
		t.Errorf("stats missing: %q", out)
	}
}

func TestAgentCommand(t *testing.T) {
	out, err := execute(t, config.Env{}, "prev\nQ\ny\n", "agent", "--seed", "1")
	if err != nil {
		t.Fatalf("agent failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 response lines, got %d:\n%s", len(lines), out)
	}
	var last struct {
		Over bool `json:"over"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if !last.Over {
		t.Error("session should be over after Q y")
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
