package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/roster/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	// Test with empty XDG_CONFIG_HOME (should use ~/.config)
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "roster", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}
	if cfg.DefaultFile != "" {
		t.Errorf("DefaultFile = %q, want empty", cfg.DefaultFile)
	}
}

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	configDir := filepath.Join(dir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "default_file: ~/school/students.json\nhuman: true\ncache_dir: /var/cache/roster\n")
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	wantFile := filepath.Join(home, "school/students.json")
	if cfg.DefaultFile != wantFile {
		t.Errorf("DefaultFile = %q, want %q", cfg.DefaultFile, wantFile)
	}
	if !cfg.Human {
		t.Error("Human should be true")
	}
	if cfg.CacheDir != "/var/cache/roster" {
		t.Errorf("CacheDir = %q, want /var/cache/roster", cfg.CacheDir)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "default_file: [unclosed\n")
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestGlobalConfigSave(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &GlobalConfig{DefaultFile: "/data/roster.json"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ResetGlobalConfigCache()
	loaded, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if loaded.DefaultFile != "/data/roster.json" {
		t.Errorf("DefaultFile = %q, want /data/roster.json", loaded.DefaultFile)
	}
}

func TestGlobalConfigCache(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "default_file: /first.csv\n")
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if _, err := LoadGlobalConfig(); err != nil {
		t.Fatal(err)
	}

	// Changing the file has no effect until the cache is reset.
	writeConfig(t, tmpDir, "default_file: /second.csv\n")
	cfg, _ := LoadGlobalConfig()
	if cfg.DefaultFile != "/first.csv" {
		t.Errorf("cached DefaultFile = %q, want /first.csv", cfg.DefaultFile)
	}

	ResetGlobalConfigCache()
	cfg, _ = LoadGlobalConfig()
	if cfg.DefaultFile != "/second.csv" {
		t.Errorf("reloaded DefaultFile = %q, want /second.csv", cfg.DefaultFile)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/abs/file.csv", want: "/abs/file.csv"},
		{in: "rel.json", want: "rel.json"},
		{in: "~/file.csv", want: filepath.Join(home, "file.csv")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
