package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/courtside/hoopshot-backend/internal/engine"
	"github.com/courtside/hoopshot-backend/internal/session"
)

type Config struct {
	Addr             string        `env:"ADDR" envDefault:":8080"`
	Stations         int           `env:"STATIONS" envDefault:"4"`
	StartingLives    int           `env:"STARTING_LIVES" envDefault:"3"`
	FireThreshold    int           `env:"FIRE_STREAK_THRESHOLD" envDefault:"3"`
	ShotsPerAdvance  int           `env:"SHOTS_PER_ADVANCE" envDefault:"3"`
	BasePoints       int           `env:"BASE_POINTS" envDefault:"2"`
	MoneyBallPoints  int           `env:"MONEY_BALL_POINTS" envDefault:"3"`
	HoopPositions    int           `env:"HOOP_POSITIONS" envDefault:"5"`
	GameOverCooldown time.Duration `env:"GAME_OVER_COOLDOWN" envDefault:"8s"`
	DisconnectPolicy string        `env:"DISCONNECT_POLICY" envDefault:"reset"`
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch session.DisconnectPolicy(cfg.DisconnectPolicy) {
	case session.PolicyReset, session.PolicyGameOver:
	default:
		return Config{}, fmt.Errorf("invalid DISCONNECT_POLICY %q", cfg.DisconnectPolicy)
	}
	if cfg.Stations < 1 {
		return Config{}, fmt.Errorf("STATIONS must be at least 1, got %d", cfg.Stations)
	}
	return cfg, nil
}

func (c Config) Rules() engine.Rules {
	return engine.Rules{
		StartingLives:   c.StartingLives,
		FireThreshold:   c.FireThreshold,
		ShotsPerAdvance: c.ShotsPerAdvance,
		BasePoints:      c.BasePoints,
		MoneyBallPoints: c.MoneyBallPoints,
		HoopPositions:   c.HoopPositions,
	}
}

func (c Config) SessionOptions() session.Options {
	return session.Options{
		Rules:            c.Rules(),
		GameOverCooldown: c.GameOverCooldown,
		DisconnectPolicy: session.DisconnectPolicy(c.DisconnectPolicy),
	}
}
