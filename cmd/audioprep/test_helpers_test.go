package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audioprep/internal/config"
	"audioprep/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	root       string
}

// setupCLITestEnv writes a config pointing at temp state/log dirs and a small
// dataset with two training labels and one test label.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("AUDIOPREP_LOG_LEVEL", "error")

	configPath := filepath.Join(homeDir, ".config", "audioprep", "config.toml")
	writeTestConfig(t, configPath, cfg)

	root := filepath.Join(base, "data")
	for _, rel := range []string{
		"trainingdata/cat/a.npy",
		"trainingdata/cat/b.npy",
		"trainingdata/dog/c.npy",
		"testdata/cat/d.npy",
	} {
		testsupport.WriteSpectrogram(t, filepath.Join(root, filepath.FromSlash(rel)), 2, 10)
	}

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base, root: root}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeJob(t *testing.T, env *cliTestEnv, name string) string {
	t.Helper()
	doc := `{
    "name": ` + quote(name) + `,
    "save_dir": ` + quote(filepath.Join(env.baseDir, "processed")) + `,
    "dataset": {"type": "CollectData", "args": {"path_to_dataset": [` + quote(env.root) + `], "extension": ["npy"], "subset": "train"}},
    "transform1": {"type": "LoadNumpyAry"},
    "transform2": {"type": "SpecChunking", "args": {"duration": 5, "sr": 1, "hop_size": 1}}
}`
	path := filepath.Join(env.baseDir, name+".json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write job: %v", err)
	}
	return path
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
