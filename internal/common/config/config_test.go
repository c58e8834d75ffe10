// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "resort-concierge", cfg.App.Name)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "data/Restaurant_Menu.xlsx", cfg.Menu.SpreadsheetPath)
	assert.Equal(t, []string{"101", "102", "201", "202", "301", "302"}, cfg.Rooms.Seed)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9000
	cfg.OpenAI.Model = "gpt-4o"
	cfg.Rooms.Seed = []string{"501"}
	applyDefaults(cfg)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, []string{"501"}, cfg.Rooms.Seed)
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("REDIS_ADDRESS", "redis:6379")

	cfg := &Config{}
	overrideFromEnv(cfg)

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "redis:6379", cfg.Database.Redis.Address)
	assert.True(t, cfg.Database.Redis.Enabled)
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, validateConfig(cfg))

	cfg.Database.Postgres.Host = "localhost"
	assert.Error(t, validateConfig(cfg))

	cfg.Database.Postgres.Database = "concierge"
	assert.NoError(t, validateConfig(cfg))

	cfg.Notifications.Enabled = true
	assert.Error(t, validateConfig(cfg))
	cfg.Notifications.Region = "us-east-1"
	assert.NoError(t, validateConfig(cfg))
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "concierge", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=concierge sslmode=disable", p.GetDSN())
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8000}
	assert.Equal(t, "0.0.0.0:8000", s.Addr())
}
