// Command server runs the simpletwitter gRPC backend.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/simpletwitter/internal/server"
	"github.com/dmitrijs2005/simpletwitter/internal/server/config"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	app.Run(ctx)
}
