package main

import (
	auth "Bolted/internal/auth"
	joint "Bolted/internal/calc/joint"
	batch "Bolted/internal/calc/premium/batch"
	importer "Bolted/internal/calc/premium/importer"
	report "Bolted/internal/calc/report"
	catalog "Bolted/internal/catalog"
	config "Bolted/internal/config"
	repo "Bolted/internal/repo"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, users repo.Repository, ds *catalog.Dataset) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: users}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	jointH := &joint.Handler{Data: ds}
	batchH := &batch.Handler{Data: ds}
	importerH := &importer.Handler{Data: ds}
	reportH := &report.Handler{Data: ds}

	secureApi.HandleFunc("/tools/catalog", jointH.Options).Methods("GET")
	secureApi.HandleFunc("/tools/joint/calc", jointH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/joint/batch", batchH.Joints).Methods("POST")
	secureApi.HandleFunc("/tools/joint/import", importerH.Joints).Methods("POST")
	secureApi.HandleFunc("/tools/joint/report", reportH.Generate).Methods("POST")
}

func loadCatalog(ctx context.Context, cfg config.Config, store *repo.PostgresRepository) (*catalog.Dataset, error) {
	switch cfg.CatalogSource {
	case config.CatalogDir:
		return catalog.LoadFS(os.DirFS(cfg.CatalogDir))
	case config.CatalogPostgres:
		return store.LoadCatalog(ctx)
	default:
		return catalog.Default()
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fatal("config", err)
	}

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal("database", err)
	}
	defer db.Close()
	store := repo.NewPostgresRepository(db)
	if err := store.EnsureSchema(ctx); err != nil {
		fatal("schema", err)
	}
	if cfg.SeedCatalog {
		shipped, err := catalog.Default()
		if err != nil {
			fatal("embedded catalog", err)
		}
		if err := store.SeedCatalog(ctx, shipped); err != nil {
			fatal("seed catalog", err)
		}
	}

	ds, err := loadCatalog(ctx, cfg, store)
	if err != nil {
		fatal("catalog", err)
	}
	slog.Info("catalog loaded", "source", cfg.CatalogSource, "sizes", len(ds.Sizes()), "materials", len(ds.Materials()))

	mux := mux.NewRouter()
	HandleList(mux, cfg, store, ds)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS())
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fatal("server shutdown", err)
	}
	slog.Info("server stopped")

	wg.Wait()
}
