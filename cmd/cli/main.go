// Command cli is an interactive client for the simpletwitter server.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/simpletwitter/internal/client/cli"
	"github.com/dmitrijs2005/simpletwitter/internal/client/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
