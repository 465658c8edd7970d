package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	yaml "gopkg.in/yaml.v2"
	"github.com/joho/godotenv"
)

// Config holds the bank-wide deployment parameters. Values are layered:
// compiled defaults, then an optional yaml file, then LIFTBANK_* entries
// from an optional .env file.
type Config struct {
	NumFloors       int           `yaml:"NumFloors"`
	NumCars         int           `yaml:"NumCars"`
	CarCapacity     int           `yaml:"CarCapacity"`
	DoorOpenTicks   int           `yaml:"DoorOpenTicks"`
	ReversalPenalty int           `yaml:"ReversalPenalty"`
	TickInterval    time.Duration `yaml:"TickInterval"`
}

func Default() Config {
	return Config{
		NumFloors:       4,
		NumCars:         2,
		CarCapacity:     8,
		DoorOpenTicks:   3,
		ReversalPenalty: 100,
		TickInterval:    500 * time.Millisecond,
	}
}

// Load reads cfg from a yaml file on top of the defaults. A missing file is
// not an error; a file that exists but does not parse is.
func Load(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays LIFTBANK_* keys from a .env file. A missing .env file is
// ignored; a present key with a malformed value is an error.
func (cfg *Config) ApplyEnv(path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read env file: %w", err)
	}

	intKeys := map[string]*int{
		"LIFTBANK_NUM_FLOORS":       &cfg.NumFloors,
		"LIFTBANK_NUM_CARS":         &cfg.NumCars,
		"LIFTBANK_CAR_CAPACITY":     &cfg.CarCapacity,
		"LIFTBANK_DOOR_OPEN_TICKS":  &cfg.DoorOpenTicks,
		"LIFTBANK_REVERSAL_PENALTY": &cfg.ReversalPenalty,
	}
	for key, dst := range intKeys {
		raw, ok := env[key]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*dst = v
	}

	if raw, ok := env["LIFTBANK_TICK_INTERVAL"]; ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse LIFTBANK_TICK_INTERVAL: %w", err)
		}
		cfg.TickInterval = d
	}
	return nil
}

func (cfg Config) Validate() error {
	switch {
	case cfg.NumFloors < 2:
		return fmt.Errorf("NumFloors must be at least 2, got %d", cfg.NumFloors)
	case cfg.NumCars < 1:
		return fmt.Errorf("NumCars must be at least 1, got %d", cfg.NumCars)
	case cfg.CarCapacity < 1:
		return fmt.Errorf("CarCapacity must be at least 1, got %d", cfg.CarCapacity)
	case cfg.DoorOpenTicks < 1:
		return fmt.Errorf("DoorOpenTicks must be at least 1, got %d", cfg.DoorOpenTicks)
	case cfg.ReversalPenalty < 0:
		return fmt.Errorf("ReversalPenalty must not be negative, got %d", cfg.ReversalPenalty)
	case cfg.TickInterval <= 0:
		return fmt.Errorf("TickInterval must be positive, got %v", cfg.TickInterval)
	}
	return nil
}
