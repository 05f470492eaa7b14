package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/simpletwitter/internal/flagx"
	"github.com/dmitrijs2005/simpletwitter/internal/timex"
)

type fileConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson reads the file named by -c/-config, or by SIMPLETWITTER_CLI_CONFIG
// when no flag is given. Only keys present with non-zero values are applied.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		path = os.Getenv("SIMPLETWITTER_CLI_CONFIG")
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}
