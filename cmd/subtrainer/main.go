package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	api "github.com/subtrainer/subtrainer/internal/api/http"
	auth "github.com/subtrainer/subtrainer/internal/auth/middleware"
	"github.com/subtrainer/subtrainer/internal/catalog"
	"github.com/subtrainer/subtrainer/internal/config"
	"github.com/subtrainer/subtrainer/internal/db"
	"github.com/subtrainer/subtrainer/internal/prefs"
	"github.com/subtrainer/subtrainer/internal/session"
	"github.com/subtrainer/subtrainer/internal/storage"
	"github.com/subtrainer/subtrainer/internal/views"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "subtrainer: ", log.LstdFlags)

	// --- DB (zoom preference) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()
	prefSvc := prefs.NewService(prefs.NewSQLStore(dbh, db.Driver(cfg.DBDriver) == db.DriverPostgres), logger)

	// --- Catalog ---
	var src catalog.Source = catalog.DirSource{Dir: cfg.DataDir}
	if cfg.DataURL != "" {
		src = catalog.HTTPSource{BaseURL: cfg.DataURL, Client: &http.Client{Timeout: 10 * time.Second}}
	}
	data, err := catalog.NewLoader(src, cfg.SampleFallback, logger).Load(ctx)
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}
	if data.Warning != "" {
		logger.Printf("warning: %s", data.Warning)
	}
	library := api.NewLibrary(data)
	for _, is := range library.Current().Issues {
		logger.Printf("incomplete sub %q (%s #%d): %s", is.Sub, is.Category, is.Index, is.Message)
	}

	// --- Images ---
	bs, err := storage.NewFSStore(cfg.ImageDir, "/images")
	if err != nil {
		log.Fatalf("image store: %v", err)
	}
	images := storage.NewImageResolver(bs, filepath.Join(cfg.DataDir, storage.PlaceholderKey), logger)

	renderer, err := views.New(images)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Session-Token"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	tokens := auth.NewTokenService(cfg.SessionSecret, cfg.SessionTTL)
	tokens.Secure = cfg.Mode == config.ModeOnline

	deps := api.Deps{
		Library:  library,
		Sessions: session.NewInMemoryStore(cfg.SessionTTL),
		Tokens:   tokens,
		Prefs:    prefSvc,
		Images:   images,
		Views:    renderer,
		Ready:    dbh.PingContext,
	}
	// The editor rewrites the documents the catalog was read from, so it
	// needs a local data directory.
	if cfg.EnableEditor && cfg.DataURL == "" {
		deps.Documents = catalog.DirWriter{Dir: cfg.DataDir}
		deps.Blobs = bs
		logger.Printf("editor enabled: writing to %s", cfg.DataDir)
	}
	api.Mount(r, deps)

	logger.Printf("listening on %s (mode=%s, db=%s, subs=%d)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, data.Subs.Len())
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
