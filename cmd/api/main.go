package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"estimator/internal/database"
	"estimator/internal/middleware"
	"estimator/internal/modules/auth"
	"estimator/internal/modules/catalog"
	"estimator/internal/modules/estimates"
	"estimator/internal/modules/events"
	"estimator/internal/modules/packages"
	"estimator/internal/modules/settings"
	jwtsvc "estimator/internal/pkg/jwt"
	"estimator/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "estimator.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	productRepo := repository.NewProductRepository(db)
	productCategoryRepo := repository.NewProductCategoryRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	packageCategoryRepo := repository.NewPackageCategoryRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(settingsService)

	catalogService := catalog.NewService(productRepo, productCategoryRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	packagesService := packages.NewService(packageRepo, packageCategoryRepo)
	packagesHandler := packages.NewHandler(packagesService)

	estimatesService := estimates.NewService(estimateRepo, settingsService, hub)
	estimatesHandler := estimates.NewHandler(estimatesService)

	eventsHandler := events.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// everything else requires a token
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			settingsHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			packagesHandler.RegisterRoutes(protected)
			estimatesHandler.RegisterRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
