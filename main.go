package main

import (
	"log"

	"github.com/Hammad1029/trend-finder/app"
	"github.com/Hammad1029/trend-finder/config"
)

func main() {
	// Load config from .env file
	cfg := config.LoadFromEnv()

	// Create and start app
	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal(err)
	}
}
