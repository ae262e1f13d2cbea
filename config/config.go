package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds environment defaults for the batch run. Flags on the runner
// override these; the analysis core itself reads no environment.
type Config struct {
	Env       string `envconfig:"ENV" default:"development"`
	InputPath string `envconfig:"INPUT_PATH" default:"./data"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"./out"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("deliverylens", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
