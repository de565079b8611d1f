package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Domi31tls/valentine/internal/auth"
	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/database"
	"github.com/Domi31tls/valentine/internal/router"
	"github.com/Domi31tls/valentine/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	if err := database.EnsureAdmin(db, cfg.App.AdminEmail); err != nil {
		log.Fatalf("ensure admin: %v", err)
	}

	stores := store.New(db)
	sessions := auth.NewManager(cfg.Session, stores.Sessions, stores.Users)

	r := router.Setup(cfg, stores, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
