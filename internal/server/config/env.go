package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays variables that are set; unset ones keep their value.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
