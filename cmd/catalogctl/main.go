package main

import (
	"context"
	"flag"
	"log"
	"os"

	"product-catalog/internal/client"
)

func main() {
	apiURL := flag.String("api", envOr("API_URL", "http://localhost:8080"), "base URL of the catalog API")
	flag.Parse()

	svc := client.NewService(*apiURL)
	store := client.NewStore(svc)
	view := client.NewView(store, os.Stdin, os.Stdout)

	if err := view.Run(context.Background()); err != nil {
		log.Fatal("❌ Session ended with error:", err)
	}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
