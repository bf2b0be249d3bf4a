package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aryb086/eyes-app/config"
	"github.com/aryb086/eyes-app/controllers"
	"github.com/aryb086/eyes-app/database"
	"github.com/aryb086/eyes-app/middleware"
	"github.com/aryb086/eyes-app/repositories"
	"github.com/aryb086/eyes-app/routes"
	"github.com/aryb086/eyes-app/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET must be set")
	}

	client, db, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ MongoDB Connection Error: %v", err)
	}

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("❌ MongoDB Index Error: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	cityRepo := repositories.NewCityRepository(db)

	userService := services.NewUserService(userRepo, cfg.JWTSecret)
	postService := services.NewPostService(postRepo)
	locationService := services.NewLocationService(cityRepo, userRepo)

	userController := controllers.NewUserController(userService)
	postController := controllers.NewPostController(postService)
	locationController := controllers.NewLocationController(locationService)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.TokenHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.BodyLimit(cfg.MaxUploadBytes))

	auth := middleware.AuthMiddleware(userRepo, cfg.JWTSecret)
	authLimit := middleware.RateLimit(1, 10)

	routes.SetupAuthRoutes(r, userController, authLimit)
	routes.SetupUserRoutes(r, userController, locationController, auth)
	routes.SetupPostRoutes(r, postController, auth)
	routes.SetupLocationRoutes(r, locationController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server Startup Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server Shutdown Error: %v", err)
	}

	database.Disconnect(ctx, client)
}
