package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// inTempDir runs the test from an empty directory so no config file is found
// unless the test writes one.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)
	t.Setenv("CONFIG_ENV", "missing")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 16*time.Millisecond, cfg.TickPeriod)
	assert.Equal(t, time.Duration(0), cfg.IdleTimeout)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, int64(32768), cfg.ReadLimit)
	assert.Equal(t, 5, cfg.JoinRateLimit)
	assert.Equal(t, 14, cfg.LogMaxAgeDays)
}

func TestLoadPrecedence(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := "mode: debug\nport: 9000\nidle_timeout: 2m\nlog_level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644))
	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("PONG_PORT", "9100")
	t.Setenv("PONG_TICK_PERIOD", "20ms")

	fs := pflag.NewFlagSet("pong", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--log-level=debug",
		"--max-dropped-frames=7",
		"--reap-interval=30s",
		"--join-rate-limit=2",
		"--read-limit=1024",
		"--log-max-backups=9",
	}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Mode, "from file")
	assert.Equal(t, 2*time.Minute, cfg.IdleTimeout, "from file")
	assert.Equal(t, 9100, cfg.Port, "env beats file")
	assert.Equal(t, 20*time.Millisecond, cfg.TickPeriod, "env beats default")
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats file")
	assert.Equal(t, "./web", cfg.StaticPath, "unset flag keeps default")
	assert.Equal(t, 7, cfg.MaxDroppedFrames)
	assert.Equal(t, 30*time.Second, cfg.ReapInterval)
	assert.Equal(t, 2, cfg.JoinRateLimit)
	assert.Equal(t, int64(1024), cfg.ReadLimit)
	assert.Equal(t, 9, cfg.LogMaxBackups)
	assert.Equal(t, 50, cfg.LogMaxSizeMB, "default")
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.bad.yaml"), []byte("port: [\n"), 0o644))
	t.Setenv("CONFIG_ENV", "bad")

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Mode: "release", Port: 8080, TickPeriod: 16 * time.Millisecond, Secret: "s"}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "turbo" }},
		{name: "zero tick", mutate: func(c *Config) { c.TickPeriod = 0 }},
		{name: "negative idle", mutate: func(c *Config) { c.IdleTimeout = -time.Second }},
		{name: "limit without window", mutate: func(c *Config) { c.JoinRateLimit = 3 }},
		{name: "empty secret", mutate: func(c *Config) { c.Secret = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
