package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/triptrizz/triptrizz-server/internal/config"
	"github.com/triptrizz/triptrizz-server/internal/handlers"
	"github.com/triptrizz/triptrizz-server/internal/middleware"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/internal/services"
	"github.com/triptrizz/triptrizz-server/pkg/cache"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting TripTrizz API server...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	socialProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.SocialEvents)
	defer socialProducer.Close()

	engagementProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.EngagementEvents)
	defer engagementProducer.Close()

	userRepo := repository.NewUserRepository(db.DB)
	relRepo := repository.NewRelationshipRepository(db.DB)
	blockRepo := repository.NewBlockRepository(db.DB)
	matchRepo := repository.NewMatchRepository(db.DB)
	chatRepo := repository.NewChatRepository(db.DB)
	tripRepo := repository.NewTripRepository(db.DB)
	likeRepo := repository.NewLikeRepository(db.DB)
	forumRepo := repository.NewForumRepository(db.DB)
	activityRepo := repository.NewActivityRepository(db.DB)
	verRepo := repository.NewVerificationRepository(db.DB)

	userService := services.NewUserService(userRepo, socialProducer, logger)
	relationshipService := services.NewRelationshipService(db.DB, relRepo, blockRepo, userRepo, socialProducer, logger)
	matchService := services.NewMatchService(matchRepo, chatRepo, blockRepo, userRepo, socialProducer, logger)
	chatService := services.NewChatService(chatRepo, blockRepo, socialProducer, logger)
	tripService := services.NewTripService(tripRepo, engagementProducer, logger)
	engagementService := services.NewEngagementService(db.DB, likeRepo, forumRepo, userRepo, engagementProducer, logger)
	activityService := services.NewActivityService(activityRepo, relRepo, redisClient, &cfg.Feed, logger)
	verificationService := services.NewVerificationService(verRepo, userRepo, logger)
	moderationService := services.NewModerationService(userRepo, forumRepo, logger)

	userHandler := handlers.NewUserHandler(userService, cfg.JWT.Secret)
	socialHandler := handlers.NewSocialHandler(relationshipService)
	matchHandler := handlers.NewMatchHandler(matchService, chatService)
	tripHandler := handlers.NewTripHandler(tripService, engagementService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	feedHandler := handlers.NewFeedHandler(activityService)
	adminHandler := handlers.NewAdminHandler(verificationService, moderationService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api := router.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/search", userHandler.SearchUsers)
			users.GET("/:id", userHandler.GetProfile)
			users.GET("/:id/followers", socialHandler.GetFollowers)
			users.GET("/:id/following", socialHandler.GetFollowing)
		}

		protected := api.Group("")
		protected.Use(middleware.NewJWTAuth(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))
		{
			protected.PUT("/users/profile", userHandler.UpdateProfile)
			protected.GET("/users/discover", userHandler.Discover)
			protected.GET("/users/:id/follow-status", socialHandler.FollowStatus)

			protected.POST("/follow-requests", socialHandler.SendFollowRequest)
			protected.GET("/follow-requests", socialHandler.PendingRequests)
			protected.POST("/follow-requests/:id/accept", socialHandler.AcceptFollowRequest)
			protected.POST("/follow-requests/:id/reject", socialHandler.RejectFollowRequest)
			protected.DELETE("/follow-requests/:id", socialHandler.CancelFollowRequest)
			protected.DELETE("/following/:id", socialHandler.Unfollow)
			protected.POST("/blocks", socialHandler.Block)
			protected.DELETE("/blocks", socialHandler.Unblock)

			protected.POST("/swipes", matchHandler.Swipe)
			protected.DELETE("/matches/:id", matchHandler.Reject)
			protected.GET("/matches", matchHandler.ListMatches)
			protected.GET("/conversations", matchHandler.ListConversations)
			protected.GET("/conversations/:id/messages", matchHandler.ListMessages)
			protected.POST("/conversations/:id/messages", matchHandler.SendMessage)
			protected.DELETE("/messages/:id", matchHandler.DeleteMessage)

			protected.POST("/trips", tripHandler.CreateTrip)
			protected.GET("/trips", tripHandler.ListPublicTrips)
			protected.GET("/trips/mine", tripHandler.ListMyTrips)
			protected.GET("/trips/:id", tripHandler.GetTrip)
			protected.DELETE("/trips/:id", tripHandler.DeleteTrip)
			protected.POST("/trips/:id/itineraries", tripHandler.AddItinerary)
			protected.GET("/trips/:id/itineraries", tripHandler.ListItineraries)
			protected.DELETE("/itineraries/:id", tripHandler.DeleteItinerary)

			protected.POST("/likes/toggle", engagementHandler.ToggleLike)
			protected.POST("/posts", engagementHandler.CreatePost)
			protected.GET("/posts", engagementHandler.ListPosts)
			protected.GET("/posts/:id", engagementHandler.GetPost)
			protected.POST("/posts/:id/votes", engagementHandler.VotePost)
			protected.POST("/posts/:id/comments", engagementHandler.CreateComment)
			protected.GET("/posts/:id/comments", engagementHandler.ListComments)

			protected.GET("/feed", feedHandler.GetFeed)

			protected.POST("/verification", adminHandler.SubmitVerification)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.NewJWTAuth(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/verifications", adminHandler.ListPendingVerifications)
			admin.POST("/verifications/:id/review", adminHandler.ReviewVerification)
			admin.PUT("/users/:id/active", adminHandler.SetUserActive)
			admin.DELETE("/posts/:id", adminHandler.RemovePost)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func init() {
	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll("configs", 0755); err != nil {
			log.Printf("Failed to create configs directory: %v", err)
			return
		}
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s

database:
  host: "localhost"
  port: 5432
  user: "triptrizz"
  password: "triptrizz"
  dbname: "triptrizz"
  sslmode: "disable"
  max_open_conns: 100
  max_idle_conns: 10

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 100
  min_idle_conns: 10

kafka:
  brokers:
    - "localhost:9092"
  topics:
    social_events: "social-events"
    engagement_events: "engagement-events"

jwt:
  secret: "change-me-in-production"
  expire_time: 24h

feed:
  max_feed_size: 500
  cache_ttl: 24h`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
