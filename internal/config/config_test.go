package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STARWHEEL_IDENTITY_SECRET", "s3cret")

	cfg, err := Load(&Options{ConfigFile: filepath.Join(t.TempDir(), "none.yaml"), EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 16, cfg.Redis.MaxAttempts)
	assert.Equal(t, 10, cfg.Round.Capacity)
	assert.Equal(t, int64(10), cfg.Round.EntryFee)
	assert.Equal(t, 2, cfg.Round.MinPlayers)
	assert.Equal(t, int64(1000), cfg.Round.StartingBalance)
	assert.Equal(t, 30*time.Second, cfg.AutoStart.Countdown)
	assert.True(t, cfg.AutoStart.Enabled)
	assert.Equal(t, "s3cret", cfg.Identity.Secret)

	split, err := cfg.Split()
	require.NoError(t, err)
	center, side := split.Prizes(100)
	assert.Equal(t, int64(50), center)
	assert.Equal(t, int64(25), side)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
round:
  capacity: 12
  entry_fee: 25
autostart:
  countdown: 45s
identity:
  secret: from-file
`)
	t.Setenv("STARWHEEL_ROUND_ENTRY_FEE", "5")

	cfg, err := Load(&Options{ConfigFile: path, EnvFile: noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Round.Capacity)
	assert.Equal(t, int64(5), cfg.Round.EntryFee)
	assert.Equal(t, 45*time.Second, cfg.AutoStart.Countdown)
	assert.Equal(t, "from-file", cfg.Identity.Secret)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "STARWHEEL_IDENTITY_SECRET=dotenv\nSTARWHEEL_SERVER_ADMIN_TOKEN=admin\n")
	t.Cleanup(func() {
		os.Unsetenv("STARWHEEL_IDENTITY_SECRET")
		os.Unsetenv("STARWHEEL_SERVER_ADMIN_TOKEN")
	})

	cfg, err := Load(&Options{ConfigFile: filepath.Join(t.TempDir(), "none.yaml"), EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "dotenv", cfg.Identity.Secret)
	assert.Equal(t, "admin", cfg.Server.AdminToken)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Round: RoundConfig{
				Capacity:    10,
				EntryFee:    10,
				MinPlayers:  2,
				CenterShare: "0.5",
				SideShare:   "0.25",
			},
			Identity: IdentityConfig{Secret: "s"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"capacity below three", func(c *Config) { c.Round.Capacity = 2 }},
		{"negative fee", func(c *Config) { c.Round.EntryFee = -1 }},
		{"min players above capacity", func(c *Config) { c.Round.MinPlayers = 11 }},
		{"negative starting balance", func(c *Config) { c.Round.StartingBalance = -5 }},
		{"split over the pool", func(c *Config) { c.Round.CenterShare = "0.6" }},
		{"split not a number", func(c *Config) { c.Round.SideShare = "quarter" }},
		{"missing secret", func(c *Config) { c.Identity.Secret = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
