package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want %s", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, DefaultDatabasePath)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
	}
	if cfg.Server.ShutdownTimeout.Duration() != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %s, want %s", cfg.Server.ShutdownTimeout.Duration(), DefaultShutdownTimeout)
	}
	if cfg.Tiers.Debounce.Duration() != DefaultDebounce {
		t.Errorf("Tiers.Debounce = %s, want %s", cfg.Tiers.Debounce.Duration(), DefaultDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":8080"
	cfg.Output.Dir = "/srv/balmorel/data"
	cfg.Output.Prefix = "base_"
	cfg.Tiers.File = "tiers.yaml"
	cfg.Tiers.Watch = true
	cfg.Tiers.Debounce = Duration(2 * time.Second)

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	if loaded.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %s, want :8080", loaded.Server.Addr)
	}
	if loaded.Output.Dir != "/srv/balmorel/data" || loaded.Output.Prefix != "base_" {
		t.Errorf("Output = %+v", loaded.Output)
	}
	if !loaded.Tiers.Watch || loaded.Tiers.File != "tiers.yaml" {
		t.Errorf("Tiers = %+v", loaded.Tiers)
	}
	if loaded.Tiers.Debounce.Duration() != 2*time.Second {
		t.Errorf("Tiers.Debounce = %s, want 2s", loaded.Tiers.Debounce.Duration())
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("log:\n  level: DEBUG\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want default", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad level", "log:\n  level: verbose\n", "must be one of"},
		{"bad yaml", "server: [\n", "parse config"},
		{"bad duration", "server:\n  shutdown_timeout: soon\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, _, err := LoadFromPath(configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestOutputDir(t *testing.T) {
	cfg := DefaultConfig()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got, err := cfg.OutputDir()
	if err != nil {
		t.Fatalf("OutputDir() error: %v", err)
	}
	if got != wd {
		t.Errorf("OutputDir() = %s, want %s", got, wd)
	}

	cfg.Output.Dir = "/tmp/out"
	got, _ = cfg.OutputDir()
	if got != "/tmp/out" {
		t.Errorf("OutputDir() = %s, want /tmp/out", got)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// explicit path that doesn't exist falls back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found = FindConfigPath(); found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := cfg.Save(explicit); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found = FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}
}

func TestSearchPaths(t *testing.T) {
	xdg := t.TempDir()
	home := t.TempDir()
	t.Setenv(EnvConfigPath, "/explicit.yaml")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	want := []string{
		"/explicit.yaml",
		ConfigFileName,
		filepath.Join(xdg, ConfigDirName, "config.yaml"),
		filepath.Join(home, ".config", ConfigDirName, "config.yaml"),
		filepath.Join("/etc", ConfigDirName, "config.yaml"),
	}
	got := SearchPaths()
	if len(got) != len(want) {
		t.Fatalf("SearchPaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SearchPaths()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	if got := SearchPaths(); len(got) != 3 || got[0] != ConfigFileName {
		t.Errorf("SearchPaths() without env = %v", got)
	}
}

func TestFindConfigPathPrefersXDG(t *testing.T) {
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	home := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	homePath := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	if err := DefaultConfig().Save(homePath); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigPath(); got != homePath {
		t.Errorf("FindConfigPath() = %s, want %s", got, homePath)
	}

	xdgPath := filepath.Join(xdg, ConfigDirName, "config.yaml")
	if err := DefaultConfig().Save(xdgPath); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigPath(); got != xdgPath {
		t.Errorf("FindConfigPath() = %s, want %s", got, xdgPath)
	}
	if got := DefaultConfigPath(); got != xdgPath {
		t.Errorf("DefaultConfigPath() = %s, want %s", got, xdgPath)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Prefix = "x_"
	s := cfg.Summary()
	if !strings.Contains(s, DefaultAddr) || !strings.Contains(s, `prefix "x_"`) {
		t.Errorf("Summary() = %q", s)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
