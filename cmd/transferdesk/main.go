package main

import (
	"context"
	"log"

	"github.com/clubdesk/transferdesk/internal/app"
)

func main() {
	ctx := context.Background()

	a, err := app.NewApp(ctx)
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	a.Run()
}
