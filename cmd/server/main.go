package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"ui-market/internal/auth"
	"ui-market/internal/cache"
	"ui-market/internal/config"
	"ui-market/internal/data"
	"ui-market/internal/handler"
	"ui-market/internal/logger"
	"ui-market/internal/middleware"
	"ui-market/internal/service"
	"ui-market/internal/view"
	"ui-market/web"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Pre-flight Checks ---
	if cfg.Session.SecretKey == "" || cfg.Session.SecretKey == "CHANGE_ME_IN_PRODUCTION_SECRET!!" {
		log.Fatal(errors.New("session secret key not set"), "Please set a secure MARKET_SESSION_SECRETKEY environment variable.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, cfg.DB.MigrationsPath); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	var authHandler *handler.AuthHandler
	if cfg.OIDC.IssuerURL != "" {
		authenticator, err := auth.NewAuthenticator(context.Background(), &cfg.OIDC)
		if err != nil {
			log.Fatal(err, "Failed to initialize authenticator")
		}
		authHandler = handler.NewAuthHandler(authenticator, sessionManager, log)
	} else {
		log.Warn("No OIDC issuer configured; login is disabled.")
	}
	enforcer, err := auth.NewEnforcer(cfg.DB.Driver, cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log, cfg.Admin.Subjects)
	log.Info("Auth components initialized and policies seeded.")

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	sitemapCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer sitemapCache.Close()
	if n, err := sitemapCache.Purge(); err != nil {
		log.Warn(fmt.Sprintf("Failed to purge cache: %v", err))
	} else if n > 0 {
		log.Debug(fmt.Sprintf("Purged %d expired cache entries", n))
	}
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	catalogService := service.NewCatalogService(
		data.NewSQLComponentRepository(db),
		data.NewCategoryRepository(db),
		data.NewKeywordRepository(db),
	)
	statsService := service.NewStatsService(data.NewStatsRepository(db), nil)

	handlers := handler.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService, viewService, log, cfg.Catalog.PageSize),
		API:     handler.NewAPIHandler(catalogService, log),
		SEO:     handler.NewSeoHandler(catalogService, sitemapCache, cfg.Catalog.BaseURL, cfg.Catalog.SitemapTTL, log),
		Auth:    authHandler,
		Admin:   handler.NewAdminHandler(statsService, viewService),
	}
	middlewares := handler.Middlewares{
		Session:  sessionManager,
		Identify: middleware.Identify(sessionManager, enforcer),
		Authz:    middleware.Authorizer(enforcer, sessionManager),
		Error:    middleware.Error(log, viewService),
	}

	// --- Router Setup ---
	router := handler.NewRouter(handlers, middlewares, web.StaticFS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
