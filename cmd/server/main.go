package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"feed_workspace/bootstrap"
	"feed_workspace/configs"
	"feed_workspace/database"
	_ "feed_workspace/docs"
	"feed_workspace/internal/logx"
	"feed_workspace/internal/middleware"
	"feed_workspace/internal/repository"
	"feed_workspace/internal/routes"
	"feed_workspace/services"
)

func main() {
	cfg := configs.Load()
	log := logx.New(cfg.LogLevel)
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// --- MongoDB Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("mongo connect failed", zap.Error(err))
	}
	defer database.Disconnect(client)
	db := client.Database(cfg.DBName)

	if err := bootstrap.EnsurePostIndexes(db); err != nil {
		log.Fatal("ensure indexes failed", zap.Error(err))
	}

	// --- Repositories & services ---
	postRepo := repository.NewMongoPostRepo(db, log)
	feedRepo := repository.NewMongoFeedRepo(db)
	userRepo := repository.NewMongoUserRepo(db)

	// --- Fiber App Setup ---
	app := fiber.New()

	// Swagger docs
	app.Get("/docs/*", swagger.HandlerDefault)

	app.Use(middleware.RequestID())
	app.Use(middleware.JWTUidOnly())

	routes.Register(app, routes.Deps{
		Posts:    services.NewPostService(postRepo, log),
		Likes:    services.NewLikeService(postRepo),
		Comments: services.NewCommentService(postRepo),
		Feed:     services.NewFeedService(feedRepo, userRepo),
	})

	log.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
