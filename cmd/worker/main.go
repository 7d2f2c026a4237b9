package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gatherly/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Pump the notification outbox into the broker.
func main() {
	_ = godotenv.Load()

	log.Println("gatherly worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("gatherly worker stopped with error: %v", err)
	}
}
