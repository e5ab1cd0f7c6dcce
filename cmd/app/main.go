package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"SignalDeck/internal/di"
	"SignalDeck/pkg/config"
)

func main() {
	// .env is optional; environment variables win over the YAML file.
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s table=%s", cfg.Environment, cfg.Remote.Table)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
