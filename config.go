package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds server and arena settings
type Config struct {
	Addr          string
	ClientDir     string
	DBPath        string
	PublicURL     string // base URL encoded into controller QR codes, "" = derive from request
	TickRate      int
	BroadcastRate int
	MaxSessions   int
	Sim           SimConfig
}

// DefaultConfig returns the tuned defaults
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		ClientDir:     "", // resolved next to the binary by main
		DBPath:        "sparks.db",
		TickRate:      60,
		BroadcastRate: 30,
		MaxSessions:   100,
		Sim:           DefaultSimConfig(),
	}
}

// TickSeconds returns the fixed simulation step
func (c Config) TickSeconds() float64 {
	return 1 / float64(c.TickRate)
}

// BroadcastEvery returns how many ticks pass between state broadcasts
func (c Config) BroadcastEvery() uint64 {
	if c.BroadcastRate <= 0 || c.BroadcastRate >= c.TickRate {
		return 1
	}
	return uint64(c.TickRate / c.BroadcastRate)
}

// Validate rejects settings the server cannot run with
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	if c.Sim.WorldRadius <= 0 {
		return fmt.Errorf("world radius must be positive, got %g", c.Sim.WorldRadius)
	}
	if c.Sim.RingRadius <= 0 || c.Sim.RingRadius > c.Sim.WorldRadius {
		return fmt.Errorf("spawn ring radius %g outside (0, %g]", c.Sim.RingRadius, c.Sim.WorldRadius)
	}
	if c.Sim.Player.MaxHP <= 0 {
		return fmt.Errorf("player health must be positive, got %d", c.Sim.Player.MaxHP)
	}
	return nil
}

// LoadConfig reads an optional .env file and applies SPARKS_* overrides on
// top of the defaults
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load env: %w", err)
		}
	} else {
		log.Println("config: loaded environment file")
	}

	cfg := DefaultConfig()
	envString("SPARKS_ADDR", &cfg.Addr)
	envString("SPARKS_CLIENT_DIR", &cfg.ClientDir)
	envString("SPARKS_DB", &cfg.DBPath)
	envString("SPARKS_PUBLIC_URL", &cfg.PublicURL)

	var err error
	set := func(e error) {
		if err == nil {
			err = e
		}
	}
	set(envInt("SPARKS_TICK_RATE", &cfg.TickRate))
	set(envInt("SPARKS_BROADCAST_RATE", &cfg.BroadcastRate))
	set(envInt("SPARKS_MAX_SESSIONS", &cfg.MaxSessions))
	set(envInt("SPARKS_PLAYER_HP", &cfg.Sim.Player.MaxHP))
	set(envFloat("SPARKS_WORLD_RADIUS", &cfg.Sim.WorldRadius))
	set(envFloat("SPARKS_SPAWN_RING", &cfg.Sim.RingRadius))
	set(envBool("SPARKS_SPARK_ON_MELEE", &cfg.Sim.SparkOnMeleeKill))
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
