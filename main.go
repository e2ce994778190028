package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"churchcms/config"
	_ "churchcms/docs"
	"churchcms/internal/cache"
	"churchcms/internal/events"
	"churchcms/internal/notify"
	"churchcms/internal/repository"
	"churchcms/internal/service"
	"churchcms/internal/storage"
	"churchcms/internal/transport/rest"
	"churchcms/pkg/database"
	"churchcms/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Church Counselling API
// @version 1.0
// @description Counsellor directory, availability and session booking for the church counselling ministry.

// @contact.name Church Office
// @contact.email counselling@example.org

// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("running database migrations")
	if err := database.RunMigrations(ctx, db, "./migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("failed to initialise S3 storage", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 storage initialised", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 storage is not configured, counsellor photo uploads are disabled")
	}

	var counsellorCache cache.CounsellorCache = cache.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, counsellor cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			counsellorCache = cache.NewRedisCache(redisClient, cfg.Redis.CacheTTL, log)
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL, log)
		if err != nil {
			log.Warn("nats unavailable, booking events disabled", zap.Error(err))
		} else {
			publisher = natsPublisher
		}
	}
	defer publisher.Close()

	repos := repository.NewRepositories(db)

	mailer, err := notify.NewMailer(cfg.Mail, log)
	if err != nil {
		log.Fatal("failed to configure mailer", zap.Error(err))
	}

	var generator notify.MeetingLinkGenerator
	if roomLinks, err := notify.NewRoomLinkGenerator(cfg.Meeting.BaseURL); err != nil {
		log.Warn("meeting base url is invalid, online bookings get the placeholder link", zap.Error(err))
	} else {
		generator = roomLinks
	}
	meetings := notify.NewMeetingLinks(generator, cfg.Meeting.PlaceholderURL, log)
	notifier := notify.NewNotifier(repos.Booking, repos.Counsellor, mailer, meetings, log)

	var (
		dispatcher notify.Dispatcher
		inline     *notify.InlineDispatcher
		worker     *notify.Worker
	)
	if cfg.Booking.NotifyQueue == "asynq" {
		if cfg.Redis.Addr == "" {
			log.Fatal("NOTIFY_QUEUE=asynq requires REDIS_ADDR")
		}
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.QueueDB,
		}

		queueClient := asynq.NewClient(redisOpt)
		defer queueClient.Close()
		dispatcher = notify.NewQueueDispatcher(queueClient, cfg.Booking.NotifyRetries, cfg.Booking.NotifyTimeout, log)

		worker = notify.NewWorker(redisOpt, cfg.Booking.WorkerCount, notifier, log)
		if err := worker.Start(); err != nil {
			log.Fatal("failed to start notification worker", zap.Error(err))
		}
	} else {
		inline = notify.NewInlineDispatcher(notifier, cfg.Booking.NotifyTimeout, log)
		dispatcher = inline
	}

	services, err := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Cache:       counsellorCache,
		Dispatcher:  dispatcher,
		Meetings:    meetings,
		Events:      publisher,
	})
	if err != nil {
		log.Fatal("failed to initialise services", zap.Error(err))
	}

	if err := services.Auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatal("failed to create bootstrap admin", zap.Error(err))
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Booking.CleanupSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := services.Maintenance.PurgeExpired(jobCtx); err != nil {
			log.Error("cleanup job failed", zap.Error(err))
		}
	})
	if err != nil {
		log.Fatal("invalid cleanup schedule", zap.String("schedule", cfg.Booking.CleanupSchedule), zap.Error(err))
	}
	scheduler.Start()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := rest.NewHandler(services, log, cfg)

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	<-scheduler.Stop().Done()

	if inline != nil {
		inline.Wait()
	}
	if worker != nil {
		worker.Shutdown()
	}

	log.Info("server stopped")
}
