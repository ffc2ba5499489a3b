// @title Hoot API
// @version 1.0
// @description REST backend for hoots (posts) with embedded comments.
// @host localhost:3000
// @BasePath /

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	_ "hoot-api/docs"

	"hoot-api/bootstrap"
	"hoot-api/config"
	"hoot-api/database"
	"hoot-api/internal/controllers"
	"hoot-api/internal/middleware"
	"hoot-api/internal/repository"
	"hoot-api/internal/routes"
	"hoot-api/internal/services"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	client := database.ConnectMongo(cfg.MongoURI)
	defer client.Disconnect(nil)

	db := client.Database(cfg.MongoDB)
	logrus.WithField("db", cfg.MongoDB).Info("connected to MongoDB")

	if err := bootstrap.EnsureIndexes(db); err != nil {
		logrus.Fatalf("ensure indexes failed: %v", err)
	}

	hootRepo := repository.NewHootRepository(db)
	userRepo := repository.NewUserRepository(db)

	hootHandler := &controllers.HootHandler{Svc: services.NewHootService(hootRepo, userRepo)}
	authHandler := &controllers.AuthHandler{Svc: services.NewAuthService(userRepo, cfg.JWTSecret)}

	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.SetupAuthPublic(app, authHandler)

	app.Use(middleware.RequireJWT(cfg.JWTSecret))
	app.Use(middleware.InjectPrincipal(userRepo))

	routes.SetupAuthPrivate(app, authHandler)
	routes.SetupHootRoutes(app, hootHandler)

	logrus.Fatal(app.Listen(":" + cfg.Port))
}
