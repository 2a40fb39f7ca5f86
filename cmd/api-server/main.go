package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mindhaven/database"
	"mindhaven/internal/config"
	"mindhaven/internal/http-api/handler"
	"mindhaven/internal/http-api/middleware"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"
	"mindhaven/internal/http-api/service"
	"mindhaven/internal/realtime"
	"mindhaven/internal/websocket"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	postRepo := repository.NewPostRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	roomRepo := repository.NewChatRoomRepository(db)
	messageRepo := repository.NewChatMessageRepository(db)

	// Live push plumbing. Without Redis the API still works, notifications
	// just land in the inbox instead of being pushed to open sessions.
	pool := realtime.NewWorkerPool(cfg.PublishWorkers)
	pool.Start()
	defer pool.Shutdown()

	var publisher realtime.Publisher = realtime.NopPublisher{}
	var subscriber *realtime.Subscriber

	hub := websocket.NewHub(roomRepo, messageRepo)
	go hub.Run(ctx)

	redisClient, err := realtime.NewRedisClient(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, live notification push disabled", "error", err)
	} else {
		publisher = realtime.NewRedisPublisher(redisClient, pool)
		subscriber = realtime.NewSubscriber(redisClient, hub)
		subscriber.Start()
		defer subscriber.Stop()
		defer redisClient.Close()
	}

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, commentRepo, reactionRepo)
	resolver := service.NewContentResolver(postRepo, videoRepo, questionRepo, storyRepo, commentRepo, replyRepo)
	notifier := service.NewNotificationService(notificationRepo, publisher)
	gamification := service.NewGamificationService(userRepo, achievementRepo, notifier)
	reactionService := service.NewReactionService(reactionRepo, resolver, notifier)
	commentService := service.NewCommentService(commentRepo, reactionRepo, resolver, notifier, gamification)
	replyService := service.NewReplyService(replyRepo, commentRepo, reactionRepo, notifier, gamification)
	postService := service.NewPostService(postRepo, gamification)
	qaService := service.NewQAService(questionRepo, notifier, gamification)
	storyService := service.NewStoryService(storyRepo, gamification)
	videoService := service.NewVideoService(videoRepo)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, userRepo, notifier)
	chatService := service.NewChatService(roomRepo, messageRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService, cfg.AccessTokenTTL)
	postHandler := handler.NewPostHandler(postService)
	libraryHandler := handler.NewLibraryHandler(videoService)
	qaHandler := handler.NewQAHandler(qaService)
	storyHandler := handler.NewStoryHandler(storyService)
	commentHandler := handler.NewCommentHandler(commentService, replyService)
	replyHandler := handler.NewReplyHandler(replyService)
	reactionHandler := handler.NewReactionHandler(reactionService)
	notificationHandler := handler.NewNotificationHandler(notifier)
	gamificationHandler := handler.NewGamificationHandler(gamification)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService)
	chatHandler := handler.NewChatHandler(chatService)

	authRequired := middleware.AuthMiddleware(authService)
	authOptional := middleware.OptionalAuth(authService)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Identity resolves before the limiter so authenticated writers are
	// throttled per user rather than per shared IP.
	api := r.Group("/api")
	api.Use(authOptional, middleware.WriteRateLimit(cfg.WriteRateLimit, cfg.WriteRateBurst))

	authHandler.RegisterRoutes(api.Group("/auth"))

	users := api.Group("/users")
	users.Use(authRequired)
	authHandler.RegisterProfileRoutes(users)

	posts := api.Group("/posts")
	postHandler.RegisterRoutes(posts, authRequired)
	commentHandler.RegisterThreadRoutes(posts, models.ContentPost, "post_id", authRequired)
	reactionHandler.RegisterRoutes(posts, models.ContentPost, "post_id", authRequired, authOptional)

	videos := api.Group("/videos")
	libraryHandler.RegisterVideoRoutes(videos, authRequired)
	commentHandler.RegisterThreadRoutes(videos, models.ContentVideo, "video_id", authRequired)
	reactionHandler.RegisterRoutes(videos, models.ContentVideo, "video_id", authRequired, authOptional)

	playlists := api.Group("/playlists")
	libraryHandler.RegisterPlaylistRoutes(playlists, authRequired)

	questions := api.Group("/questions")
	qaHandler.RegisterRoutes(questions, authRequired)

	answers := api.Group("/answers")
	commentHandler.RegisterThreadRoutes(answers, models.ContentAnswer, "answer_id", authRequired)
	reactionHandler.RegisterRoutes(answers, models.ContentAnswer, "answer_id", authRequired, authOptional)

	stories := api.Group("/stories")
	storyHandler.RegisterRoutes(stories, authRequired)
	commentHandler.RegisterThreadRoutes(stories, models.ContentStory, "story_id", authRequired)
	reactionHandler.RegisterRoutes(stories, models.ContentStory, "story_id", authRequired, authOptional)

	comments := api.Group("/comments")
	commentHandler.RegisterCommentRoutes(comments, authRequired)
	reactionHandler.RegisterRoutes(comments, models.ContentComment, "comment_id", authRequired, authOptional)

	replies := api.Group("/replies")
	replyHandler.RegisterRoutes(replies, authRequired)
	reactionHandler.RegisterRoutes(replies, models.ContentReply, "reply_id", authRequired, authOptional)

	notifications := api.Group("/notifications")
	notifications.Use(authRequired)
	notificationHandler.RegisterRoutes(notifications)

	gamificationHandler.RegisterRoutes(api, authRequired)

	prescriptions := api.Group("/prescriptions")
	prescriptions.Use(authRequired)
	prescriptionHandler.RegisterRoutes(prescriptions)

	chat := api.Group("/chat")
	chat.Use(authRequired)
	chatHandler.RegisterRoutes(chat, adminOnly)

	r.GET("/ws", authRequired, websocket.WSHandler(hub))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("http server listening", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
