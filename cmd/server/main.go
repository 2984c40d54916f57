package main

import (
	"os"
	"strings"

	"github.com/benbeisheim/notation-chess/internal/config"
	"github.com/benbeisheim/notation-chess/internal/controller"
	"github.com/benbeisheim/notation-chess/internal/model"
	"github.com/benbeisheim/notation-chess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Errorf("config: %v", err)
		os.Exit(2)
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(service.NewGameID, model.WithCastleHistoryRule(cfg.CastleHistory))
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.RegisterRoutes(app, gameController, wsController, cfg.AllowOrigins)

	log.Infof("listening on %s (castle history: %s)", cfg.Addr, cfg.CastleHistory)
	log.Fatal(app.Listen(cfg.Addr))
}
