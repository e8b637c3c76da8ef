package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Log    LogConfig
	Engine EngineConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// EngineConfig carries the server-wide generation defaults. A request may
// override MaxIters, MaxStagnant and Seed per call; ProposalTTL applies to
// every stored proposal.
type EngineConfig struct {
	MaxIters    int
	MaxStagnant int
	Seed        uint64
	ProposalTTL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}
	cfg.Engine = EngineConfig{
		MaxIters:    v.GetInt("ENGINE_MAX_ITERS"),
		MaxStagnant: v.GetInt("ENGINE_MAX_STAGNANT"),
		Seed:        v.GetUint64("ENGINE_SEED"),
		ProposalTTL: v.GetString("PROPOSAL_TTL"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENGINE_MAX_ITERS", 5000)
	v.SetDefault("ENGINE_MAX_STAGNANT", 300)
	v.SetDefault("ENGINE_SEED", 0)
	v.SetDefault("PROPOSAL_TTL", "30m")
}
