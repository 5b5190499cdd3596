package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/Codingworld786/ecommerce-fullstack/internal/catalog"
	"github.com/Codingworld786/ecommerce-fullstack/internal/config"
	"github.com/Codingworld786/ecommerce-fullstack/internal/handlers"
	"github.com/Codingworld786/ecommerce-fullstack/internal/session"
	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
	"github.com/Codingworld786/ecommerce-fullstack/internal/store"
)

func main() {
	// Debug until the configured level is known
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logLevel.Set(cfg.LogLevel)

	// 2. Load Catalog
	ctx := context.Background()
	products, err := loadCatalog(ctx, cfg)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "products", products.Len())

	// 3. Session Setup
	sessionStore, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize session store", "backend", cfg.SessionBackend, "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load(cfg.TemplatesDir); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	shopHandler := &handlers.ShopHandler{
		Shop:         shop.New(products),
		Templates:    templates,
		SessionStore: sessionStore,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static", fileServer))

	// Rate limit order placement per client
	rateLimiter := handlers.NewRateLimiter(cfg.OrderRatePerMinute, cfg.OrderBurst)
	stopCleanup := make(chan struct{})
	go rateLimiter.Cleanup(time.Minute, stopCleanup)
	defer close(stopCleanup)

	shopHandler.Routes(mux, rateLimiter)
	mux.Handle("/api/", shopHandler.API(cfg.CORSOrigins))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			plaintextHTTP(!cfg.CookieSecure, CSRF(mux)),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "sessions", cfg.SessionBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}

// loadCatalog prefers the SQLite catalog, then a YAML file, then the
// built-in products.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	switch {
	case cfg.CatalogDB != "":
		db, err := store.NewStore(cfg.CatalogDB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return nil, err
		}
		return db.LoadCatalog(ctx)
	case cfg.CatalogPath != "":
		return catalog.LoadFile(cfg.CatalogPath)
	default:
		return catalog.Default(), nil
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) (sessions.Store, func(), error) {
	opts := &sessions.Options{
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   cfg.SessionMaxAge,
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	noop := func() {}

	switch cfg.SessionBackend {
	case config.BackendCookie:
		s := sessions.NewCookieStore(cfg.SessionKey)
		s.Options = opts
		return s, noop, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		s := session.NewRedisStore(client, cfg.SessionKey)
		s.Options = opts
		return s, func() { client.Close() }, nil

	default:
		if err := os.MkdirAll(cfg.SessionDir, 0o700); err != nil {
			return nil, nil, err
		}
		s := sessions.NewFilesystemStore(cfg.SessionDir, cfg.SessionKey)
		// Order history outgrows the 4096 byte default
		s.MaxLength(0)
		s.Options = opts
		return s, noop, nil
	}
}

// plaintextHTTP tells the CSRF check that requests arrive over plain HTTP,
// as they do in local development.
func plaintextHTTP(enabled bool, next http.Handler) http.Handler {
	if !enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
