package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/coursemart/data"
	"github.com/localnerve/coursemart/internal/config"
	"github.com/localnerve/coursemart/internal/database"
	"github.com/localnerve/coursemart/internal/identity"
	"github.com/localnerve/coursemart/internal/server"
	"github.com/localnerve/coursemart/internal/services"
	"gorm.io/gorm"
)

// @title Coursemart API
// @version 1.0.0
// @description Course catalog, purchases and learner progress
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/coursemart
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database (catalog pool)
	catalogDB, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to catalog database: %v", err)
	}
	defer database.Close(catalogDB)

	// Connect to database (user pool). SQLite has one file and no accounts, so share the pool.
	var userDB *gorm.DB
	if cfg.IsSQLite() {
		userDB = catalogDB
	} else {
		userDB, err = database.ConnectUser(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to user database: %v", err)
		}
		defer database.Close(userDB)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(catalogDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.SeedCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		_, err := services.SeedCatalog(ctx, catalogDB, data.SeedCatalog)
		cancel()
		if err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	provider, err := identity.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create identity provider: %v", err)
	}
	log.Printf("Identity provider %q will be contacted on first authenticated request", cfg.IdentityProvider)

	app := server.New(server.Deps{
		Config:    cfg,
		CatalogDB: catalogDB,
		UserDB:    userDB,
		Identity:  provider,
		Metrics:   true,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
