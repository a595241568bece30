package main

import (
	"github.com/joho/godotenv"

	"github.com/mr1hm/go-quake-dashboard/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(&options{}).Execute(); err != nil {
		logging.Fatalf("quake-export: %v", err)
	}
}
