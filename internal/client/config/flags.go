package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/simpletwitter/internal/flagx"
)

// parseFlags applies -a (server address) and -t (request timeout, e.g.
// "3s"). Other arguments, such as -c, are ignored here.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "backend address")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	return fs.Parse(flagx.FilterArgs(args, []string{"-a", "-t"}))
}
