package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	fs := NewFlagSet("agent")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := parse(t)
	if cfg.Addr() != "127.0.0.1:5000" {
		t.Errorf("addr=%s", cfg.Addr())
	}
	if cfg.Board.FQBN != DefaultFQBN {
		t.Errorf("fqbn=%s", cfg.Board.FQBN)
	}
	if len(cfg.Serial.Keywords) != 4 || cfg.Serial.Keywords[0] != "arduino" {
		t.Errorf("keywords=%v", cfg.Serial.Keywords)
	}
	if cfg.Serial.WatchInterval != DefaultWatchInterval {
		t.Errorf("watch_interval=%v", cfg.Serial.WatchInterval)
	}
	if cfg.Toolchain.Timeout != 0 {
		t.Errorf("expected no toolchain timeout by default, got %v", cfg.Toolchain.Timeout)
	}
	if cfg.Toolchain.BundleDir != DefaultBundleDir {
		t.Errorf("bundle_dir=%s", cfg.Toolchain.BundleDir)
	}
}

func TestLoad_FileEnvAndFlagsPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
server:
  port: 6000
board:
  fqbn: arduino:avr:nano
serial:
  keywords: [ch340, cp210]
  watch_interval: 500ms
toolchain:
  timeout: 2m
`)
	t.Setenv("AGENT_SERVER_HOST", "0.0.0.0")

	cfg := parse(t, "--config", path, "--port", "7000")
	if cfg.Server.Port != 7000 {
		t.Errorf("flag should win over file, port=%d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("env should win over default, host=%s", cfg.Server.Host)
	}
	if cfg.Board.FQBN != "arduino:avr:nano" {
		t.Errorf("fqbn=%s", cfg.Board.FQBN)
	}
	if len(cfg.Serial.Keywords) != 2 || cfg.Serial.Keywords[1] != "cp210" {
		t.Errorf("keywords=%v", cfg.Serial.Keywords)
	}
	if cfg.Serial.WatchInterval != 500*time.Millisecond {
		t.Errorf("watch_interval=%v", cfg.Serial.WatchInterval)
	}
	if cfg.Toolchain.Timeout != 2*time.Minute {
		t.Errorf("timeout=%v", cfg.Toolchain.Timeout)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	fs := NewFlagSet("agent")
	_ = fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")})

	if _, err := Load(fs); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	ok := Config{Server: ServerConfig{Port: 5000}, Board: BoardConfig{FQBN: DefaultFQBN}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []Config{
		{Server: ServerConfig{Port: 5000}},
		{Server: ServerConfig{Port: 70000}, Board: BoardConfig{FQBN: DefaultFQBN}},
		{Server: ServerConfig{Port: 5000}, Board: BoardConfig{FQBN: DefaultFQBN}, Serial: SerialConfig{WatchInterval: -time.Second}},
		{Server: ServerConfig{Port: 5000}, Board: BoardConfig{FQBN: DefaultFQBN}, Toolchain: ToolchainConfig{Timeout: -time.Second}},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
