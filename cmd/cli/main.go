package main

import (
	"context"
	"log"

	"github.com/ametova/finkeeper/internal/cli"
	"github.com/ametova/finkeeper/internal/cli/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
