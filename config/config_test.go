package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestRead_Defaults(t *testing.T) {
	cfg := read(viper.New())

	assert.Equal(t, "8084", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.Game.RoundCount)
	assert.Equal(t, 30, cfg.Game.TimeLimitSeconds)
	assert.Equal(t, 5*time.Second, cfg.Game.GraceDelay)
	assert.Equal(t, time.Duration(0), cfg.Game.IdleRoomTimeout)
	assert.Equal(t, 20.0, cfg.Game.EventsPerSecond)
	assert.True(t, cfg.Game.TrustClientIdentity)
}

func TestRead_EnvOverrides(t *testing.T) {
	t.Setenv("DUEL_GAME_ROUND_COUNT", "9")
	t.Setenv("DUEL_GAME_GRACE_DELAY", "2s")
	t.Setenv("DUEL_SERVER_PORT", "9000")
	t.Setenv("DUEL_GAME_TRUST_CLIENT_IDENTITY", "false")

	cfg := read(viper.New())

	assert.Equal(t, 9, cfg.Game.RoundCount)
	assert.Equal(t, 2*time.Second, cfg.Game.GraceDelay)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.False(t, cfg.Game.TrustClientIdentity)
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DB: "duel", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=duel sslmode=disable", p.DSN())
}

func TestRead_SampleFileMatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigFile("../config.yaml")
	cfg := read(v)

	defaults := read(viper.New())
	assert.Equal(t, defaults.Game, cfg.Game)
	assert.Equal(t, time.Duration(0), cfg.Game.IdleRoomTimeout, "idle reaper is off unless configured")
}
