package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mirayaksel/sketchfolio/internal/config"
	"github.com/mirayaksel/sketchfolio/internal/database"
	"github.com/mirayaksel/sketchfolio/internal/handler"
	"github.com/mirayaksel/sketchfolio/internal/queue"
	"github.com/mirayaksel/sketchfolio/internal/repository"
	"github.com/mirayaksel/sketchfolio/internal/router"
	queue_publisher "github.com/mirayaksel/sketchfolio/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Reaction state goes through the failover composition: MySQL is
	// authoritative, the JSON file store only answers when the database
	// is unreachable (local development degradation).
	reactions := repository.NewFailoverReactionStore(
		repository.NewReactionRepo(db),
		repository.NewFileReactionStore(cfg.FallbackStorePath),
	)

	prod := cfg.IsProd()
	h := router.Handlers{
		Reactions: handler.NewReactionHandler(reactions, prod),
		Analytics: handler.NewAnalyticsHandler(repository.NewVisitRepo(db), repository.NewStatsRepo(db), prod),
		Comments:  handler.NewCommentHandler(repository.NewCommentRepo(db), repository.NewConfigRepo(db), prod),
		Config:    handler.NewConfigHandler(repository.NewConfigRepo(db), prod),
		Contact:   handler.NewContactHandler(repository.NewContactRepo(db), repository.NewConfigRepo(db), queue_publisher.PublishContactMessage, prod),
	}
	if cfg.AdminEnabled() {
		h.Admin = &handler.AdminHandler{
			PasswordHash: cfg.AdminPasswordHash,
			JWTSecret:    cfg.JWTSecret,
			TokenTTLMin:  cfg.AdminTokenTTLMin,
			Comments:     repository.NewCommentRepo(db),
			Flags:        repository.NewConfigRepo(db),
			Contacts:     repository.NewContactRepo(db),
			Prod:         prod,
		}
	} else {
		log.Printf("admin surface disabled: set JWT_SECRET and ADMIN_PASSWORD_HASH to enable it")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and response caching disabled")
	}

	// The notification worker only runs when a broker is configured;
	// without one the contact form still stores messages.
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		go func() {
			if err := queue.StartContactConsumer(cfg.NotifyAccessKey); err != nil {
				log.Printf("contact consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, h, rdb, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
