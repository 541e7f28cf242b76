// Package main runs the in-memory marketplace API stub for local
// development: seeded users and artworks behind the same REST contract the
// client talks to in production.
package main

import (
	"flag"
	"net/http"

	"github.com/Anisah23/lartduvraisoi-client/internal/apitest"
	"github.com/Anisah23/lartduvraisoi-client/internal/logger"
	"github.com/Anisah23/lartduvraisoi-client/internal/models"
	"go.uber.org/zap"
)

func main() {
	var addr string
	flag.StringVar(&addr, "a", "localhost:5000", "listen address")
	flag.Parse()

	log := logger.New()
	if err := log.Init("info"); err != nil {
		panic(err)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	srv := apitest.New()
	srv.SeedUser("collector-token", "casey", models.RoleCollector)
	srv.SeedUser("artist-token", "Frida Kahlo", models.RoleArtist)
	srv.SeedArtwork(models.Artwork{ID: "a1", Title: "Self-Portrait", Price: 420, Category: "painting", Artist: "Frida Kahlo"})
	srv.SeedArtwork(models.Artwork{ID: "a2", Title: "The Two Fridas", Price: 1200, Category: "painting", Artist: "Frida Kahlo"})
	srv.SeedArtwork(models.Artwork{ID: "a3", Title: "Bronze Study", Price: 95, Category: "sculpture", Artist: "Frida Kahlo"})

	zapLogger.Info("starting stub API server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv); err != nil {
		zapLogger.Fatal("failed to start stub API server", zap.Error(err))
	}
}
