package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, 64, cfg.SendBuffer)
	assert.Equal(t, "kick", cfg.Backpressure)
	assert.Equal(t, 64, cfg.Chat.MaxSenderLen)
	require.Len(t, cfg.ICEServers, 1)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, cfg.ICEServers[0].URLs)
}

func TestLoadFile_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	yaml := `
port: 9100
send_buffer: 8
chat:
  history_limit: 50
  rate_limit: 5
  rate_interval: 2s
ice_servers:
  - urls: ["turn:turn.example.com:3478"]
    username: u
    credential: p
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("PORT", "9200")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, 8, cfg.SendBuffer)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, 2*time.Second, cfg.Chat.RateInterval)
	assert.Equal(t, []ICEServer{{URLs: []string{"turn:turn.example.com:3478"}, Username: "u", Credential: "p"}}, cfg.ICEServers)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:       8000,
			ReadLimit:  1024,
			PingPeriod: time.Second,
			PongWait:   2 * time.Second,
			WriteWait:  time.Second,
			SendBuffer: 1,
		}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "ping not shorter than pong", mutate: func(c *Config) { c.PingPeriod = 2 * time.Second }, wantErr: true},
		{name: "zero send buffer", mutate: func(c *Config) { c.SendBuffer = 0 }, wantErr: true},
		{name: "rate limit without interval", mutate: func(c *Config) { c.Chat.RateLimit = 3 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
