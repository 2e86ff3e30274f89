package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/stelofinance/homepage/web"
)

func main() {
	// Local .env for development, never overrides the real environment
	_ = godotenv.Load()

	if err := web.Run(context.Background(), os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
