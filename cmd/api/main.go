package main

import (
	"context"
	"log"

	"github.com/RadikAgl/events/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
//
// @title Events Service API
// @version 1.0
// @description Event catalog, attendee registration and notification delivery service.
// @BasePath /api/v1
func main() {
	log.Println("events api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("events api stopped with error: %v", err)
	}
}
