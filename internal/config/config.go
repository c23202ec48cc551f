package config

import (
	"os"

	"github.com/hyp3rd/ewrap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/scramble/internal/chaos"
	"github.com/san-kum/scramble/internal/stats"
)

const (
	DefaultMap        = "logistic"
	DefaultA          = 3.99
	DefaultIterations = 5
	DefaultLength     = 16
	DefaultWorkers    = 1
)

type Config struct {
	Map        string      `yaml:"map"`
	A          float64     `yaml:"a"`
	Iterations int         `yaml:"iterations"`
	Length     int         `yaml:"length"`
	Seed       int64       `yaml:"seed,omitempty"`
	X0         *float64    `yaml:"x0,omitempty"`
	Curve      CurveConfig `yaml:"curve"`
}

type CurveConfig struct {
	From      int `yaml:"from"`
	To        int `yaml:"to"`
	Step      int `yaml:"step"`
	SeedsPerN int `yaml:"seeds_per_n"`
	Workers   int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Map:        DefaultMap,
		A:          DefaultA,
		Iterations: DefaultIterations,
		Length:     DefaultLength,
		Curve:      DefaultCurveConfig(),
	}
}

func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		From:      stats.DefaultFrom,
		To:        stats.DefaultTo,
		Step:      stats.DefaultStep,
		SeedsPerN: stats.DefaultSeedsPerN,
		Workers:   DefaultWorkers,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ewrap.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ewrap.Wrap(err, "parse config")
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return ewrap.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ewrap.Wrap(err, "write config")
	}
	return nil
}

// Param resolves the map name and validates a.
func (c *Config) Param() (chaos.Param, error) {
	kind, err := chaos.ParseKind(c.Map)
	if err != nil {
		return chaos.Param{}, err
	}
	return chaos.NewParam(kind, c.A)
}

// Ns expands the curve range into table lengths.
func (c *Config) Ns() ([]int, error) {
	return stats.Range(c.Curve.From, c.Curve.To, c.Curve.Step)
}
