package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Postgres     PostgresConfig     `mapstructure:"postgres"`
	SessionRedis SessionRedisConfig `mapstructure:"sessionredis"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Game         GameConfig         `mapstructure:"game"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	AllowOrigins    string        `mapstructure:"allow_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PostgresConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode)
}

type SessionRedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r SessionRedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type GameConfig struct {
	RoundCount          int           `mapstructure:"round_count"`
	TimeLimitSeconds    int           `mapstructure:"time_limit_seconds"`
	GraceDelay          time.Duration `mapstructure:"grace_delay"`
	PersistTimeout      time.Duration `mapstructure:"persist_timeout"`
	IdleRoomTimeout     time.Duration `mapstructure:"idle_room_timeout"`
	ReapInterval        time.Duration `mapstructure:"reap_interval"`
	EventsPerSecond     float64       `mapstructure:"events_per_second"`
	EventBurst          int           `mapstructure:"event_burst"`
	TrustClientIdentity bool          `mapstructure:"trust_client_identity"`
	ContentSeed         uint64        `mapstructure:"content_seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "duel-service")
	v.SetDefault("app.version", "0.1.0")

	v.SetDefault("server.port", "8084")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.allow_origins", "http://localhost:5173")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("postgres.enabled", true)
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.user", "myuser")
	v.SetDefault("postgres.password", "mypassword")
	v.SetDefault("postgres.db", "duel")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("sessionredis.enabled", true)
	v.SetDefault("sessionredis.host", "localhost")
	v.SetDefault("sessionredis.port", "6379")
	v.SetDefault("sessionredis.password", "")
	v.SetDefault("sessionredis.db", 0)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "game-results")

	v.SetDefault("game.round_count", 5)
	v.SetDefault("game.time_limit_seconds", 30)
	v.SetDefault("game.grace_delay", 5*time.Second)
	v.SetDefault("game.persist_timeout", 5*time.Second)
	v.SetDefault("game.idle_room_timeout", 0)
	v.SetDefault("game.reap_interval", time.Minute)
	v.SetDefault("game.events_per_second", 20.0)
	v.SetDefault("game.event_burst", 40)
	v.SetDefault("game.trust_client_identity", true)
	v.SetDefault("game.content_seed", 0)
}

// Read loads config.yaml (if present) over the defaults; DUEL_ prefixed env
// variables override both.
func Read() Config {
	return read(viper.New())
}

func read(v *viper.Viper) Config {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")
	v.AddConfigPath("/")

	setDefaults(v)

	// ENV overrides with prefix DUEL_ and dot-to-underscore replacement
	v.SetEnvPrefix("DUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		zap.L().Warn("Failed to read configuration file", zap.Error(err))
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		zap.L().Error("Configuration could not be parsed", zap.Error(err))
	}

	return config
}
