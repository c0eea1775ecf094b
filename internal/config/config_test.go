package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveFile(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(FileEnvVar, "")

	// Nothing configured
	if got := ResolveFile(""); got != DefaultFile {
		t.Errorf("ResolveFile() = %q, want %q", got, DefaultFile)
	}

	// Global config
	writeConfig(t, tmpDir, "default_file: /cfg/students.json\n")
	ResetGlobalConfigCache()
	if got := ResolveFile(""); got != "/cfg/students.json" {
		t.Errorf("ResolveFile() with config = %q, want /cfg/students.json", got)
	}

	// Environment beats config
	t.Setenv(FileEnvVar, "/env/students.csv")
	if got := ResolveFile(""); got != "/env/students.csv" {
		t.Errorf("ResolveFile() with env = %q, want /env/students.csv", got)
	}

	// Flag beats everything
	if got := ResolveFile("/flag/x.csv"); got != "/flag/x.csv" {
		t.Errorf("ResolveFile(flag) = %q, want /flag/x.csv", got)
	}
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("ROSTER_TEST_KEY", "from-env")
	if got := GetConfigValue("ROSTER_TEST_KEY", "from-config"); got != "from-env" {
		t.Errorf("GetConfigValue() = %q, want from-env", got)
	}

	t.Setenv("ROSTER_TEST_KEY", "")
	if got := GetConfigValue("ROSTER_TEST_KEY", "from-config"); got != "from-config" {
		t.Errorf("GetConfigValue() = %q, want from-config", got)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	// Go 1.21 equivalent of t.Chdir(dir).
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ROSTER_DOTENV_TEST=hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROSTER_DOTENV_TEST", "")
	os.Unsetenv("ROSTER_DOTENV_TEST")

	LoadEnv()

	if got := os.Getenv("ROSTER_DOTENV_TEST"); got != "hello" {
		t.Errorf("ROSTER_DOTENV_TEST = %q, want hello", got)
	}
}

func TestMirrorDBPath(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache-home")

	a := MirrorDBPath("/data/a.csv")
	b := MirrorDBPath("/data/b.csv")

	if a == b {
		t.Error("different stores should get different mirrors")
	}
	if a != MirrorDBPath("/data/a.csv") {
		t.Error("MirrorDBPath should be stable")
	}
	if !strings.HasPrefix(a, "/tmp/cache-home/roster/") || !strings.HasSuffix(a, ".db") {
		t.Errorf("MirrorDBPath = %q, want under /tmp/cache-home/roster", a)
	}
}
