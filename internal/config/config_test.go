package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audioprep/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "audioprep")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.ManifestPath() != filepath.Join(wantState, "manifest.db") {
		t.Fatalf("unexpected manifest path: %q", cfg.ManifestPath())
	}
	if !reflect.DeepEqual(cfg.Dataset.Extensions, []string{"wav", "mp3", "npy", "pth"}) {
		t.Fatalf("unexpected default extensions: %v", cfg.Dataset.Extensions)
	}
	if cfg.Loader.BatchSize != config.Default().Loader.BatchSize {
		t.Fatalf("unexpected batch size: %d", cfg.Loader.BatchSize)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "audioprep.toml")

	type payload struct {
		Paths struct {
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
		Dataset struct {
			Extensions []string `toml:"extensions"`
			Subset     string   `toml:"subset"`
		} `toml:"dataset"`
		Loader struct {
			BatchSize int `toml:"batch_size"`
		} `toml:"loader"`
	}
	custom := payload{}
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Dataset.Extensions = []string{".npy", "npy", " wav "}
	custom.Dataset.Subset = "TRAIN"
	custom.Loader.BatchSize = 32
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.StateDir != filepath.Join(tempDir, "state") {
		t.Fatalf("unexpected state dir %q", cfg.Paths.StateDir)
	}
	if !reflect.DeepEqual(cfg.Dataset.Extensions, []string{"npy", "wav"}) {
		t.Fatalf("expected normalized extensions, got %v", cfg.Dataset.Extensions)
	}
	if cfg.Dataset.Subset != "train" {
		t.Fatalf("expected lowercased subset, got %q", cfg.Dataset.Subset)
	}
	if cfg.Loader.BatchSize != 32 {
		t.Fatalf("expected batch size 32, got %d", cfg.Loader.BatchSize)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "audioprep.toml")
	if err := os.WriteFile(configPath, []byte("[dataset]\nextension = [\"wav\"]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvOverrides(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUDIOPREP_STATE_DIR", stateDir)
	t.Setenv("AUDIOPREP_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StateDir != stateDir {
		t.Errorf("expected state dir from env, got %q", cfg.Paths.StateDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "validation_split") {
		t.Fatalf("sample config missing loader section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.StateDir, "audioprep") {
		t.Fatalf("expected state dir to contain audioprep, got %q", cfg.Paths.StateDir)
	}
	if cfg.Loader.BatchSize != config.Default().Loader.BatchSize {
		t.Fatalf("sample batch size %d differs from default", cfg.Loader.BatchSize)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Loader.BatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive batch size")
	}

	cfg = config.Default()
	cfg.Loader.ValidationSplit = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for validation split of 1")
	}

	cfg = config.Default()
	cfg.Dataset.Subset = "valid"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown subset")
	}

	cfg = config.Default()
	cfg.Logging.Level = "trace"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
