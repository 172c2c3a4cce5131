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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mountaintravels/admin-dashboard/internal/config"
	"github.com/mountaintravels/admin-dashboard/internal/database"
	"github.com/mountaintravels/admin-dashboard/internal/handler"
	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/middleware"
	"github.com/mountaintravels/admin-dashboard/internal/queue"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
	"github.com/mountaintravels/admin-dashboard/internal/router"
	"github.com/mountaintravels/admin-dashboard/internal/storage"
	"github.com/mountaintravels/admin-dashboard/internal/validation"
	"github.com/mountaintravels/admin-dashboard/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "admin-dashboard")
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log file:", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	if cfg.Mongo.Migrate {
		v, err := database.Migrate(mongoClient, cfg.Mongo.Database)
		if err != nil {
			log.Fatal("DATABASE", "migrate: "+err.Error())
		}
		log.LogDatabase("MIGRATE", "*", fmt.Sprintf("schema at version %d", v))
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("REDIS", "redis unavailable; cache, rate limit and logout revocation are off")
	} else {
		defer rdb.Close()
	}

	events := queue.NewPublisher(cfg.Events)
	defer events.Close()
	if cfg.Events.ConsumerEnabled && cfg.Events.Backend == "rabbitmq" {
		consumer := &queue.NotificationConsumer{URL: cfg.Events.RabbitURL, Queue: cfg.Events.Queue, LogDir: cfg.LogDir, Log: log}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("EVENTS", "consumer stopped: "+err.Error())
			}
		}()
	}

	var (
		admins    = repository.NewAdminRepo(db)
		sessions  = repository.NewSessionRepo(rdb)
		tours     = repository.NewTourRepo(db)
		bookings  = repository.NewBookingRepo(db)
		tickets   = repository.NewTicketRepo(db)
		inquiries = repository.NewInquiryRepo(db)
		feedback  = repository.NewFeedbackRepo(db)
		staff     = repository.NewStaffRepo(db)
		agents    = repository.NewAgentRepo(db)
		users     = repository.NewUserRepo(db)
		stats     = repository.NewDashboardRepo(db)
		disk      = storage.NewDisk(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, cfg.Uploads.MaxBytes)
	)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal("WEB", err.Error())
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = response.ErrorHandler
	e.Renderer = renderer

	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Session(cfg.Auth.SessionSecret, cfg.Auth.CookieName, sessions))
	e.Use(middleware.PageGate())

	cacheCfg := config.LoadCacheConfig()
	router.RegisterRoutes(e, cfg.Uploads, readiness(mongoClient.Ping, rdb))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg.Auth, admins, sessions, log),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterPages(e)
	router.RegisterAPI(e, router.Handlers{
		Profile:   handler.NewProfileHandler(cfg.Auth, admins, disk, log),
		Tours:     handler.NewTourHandler(tours, log),
		Bookings:  handler.NewBookingHandler(bookings, events, log),
		Tickets:   handler.NewTicketHandler(tickets, agents, users, events, log),
		Inquiries: handler.NewInquiryHandler(inquiries, agents, staff, events, log),
		Feedback:  handler.NewFeedbackHandler(feedback, users, log),
		Staff:     handler.NewStaffHandler(staff, log),
		Agents:    handler.NewAgentHandler(agents, log),
		Users:     handler.NewUserHandler(users, log),
		Dashboard: handler.NewDashboardHandler(stats, log),
		Upload:    handler.NewUploadHandler(disk, tours, log),
	}, cacheCfg, rdb)

	addr := ":" + cfg.Port
	go func() {
		log.Info("SERVER", fmt.Sprintf("listening on %s (env=%s, events=%s)", addr, cfg.Env, cfg.Events.Backend))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("SERVER", err.Error())
		}
	}()

	<-ctx.Done()
	log.Info("SERVER", "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error("SERVER", "shutdown: "+err.Error())
	}
}

func readiness(mongoPing func(context.Context, *readpref.ReadPref) error, rdb *redis.Client) map[string]handler.Pinger {
	deps := map[string]handler.Pinger{
		"mongo": func(ctx context.Context) error { return mongoPing(ctx, nil) },
	}
	if rdb != nil {
		deps["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return deps
}
