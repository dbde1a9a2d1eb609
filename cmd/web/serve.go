package main

import (
	"context"
	"fmt"
	"log"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/config"
	"github.com/navbryce/heddit-be/controllers"
	"github.com/navbryce/heddit-be/db/planetscale"
	"github.com/navbryce/heddit-be/middleware"
	"github.com/navbryce/heddit-be/routes"
	"github.com/navbryce/heddit-be/services"
	"github.com/spf13/cobra"
)

const TargetCredentialsFile = "./google-application-credentials.json"

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides $PORT)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if port != "" {
		cfg.Port = port
	}
	ctx := context.Background()

	db, err := planetscale.GetDatabase(cfg.DB)
	if err != nil {
		return fmt.Errorf("received err when attempting to connect to DB: %w", err)
	}
	defer db.Close()

	if err := config.ConfigureFirebaseCredentials(TargetCredentialsFile); err != nil {
		return fmt.Errorf("an error occurred while configuring firebase credentials: %w", err)
	}
	fbApp, err := firebase.NewApp(ctx, nil)
	if err != nil {
		return fmt.Errorf("error initializing firebase: %w", err)
	}
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error initializing auth client: %w", err)
	}

	var media controllers.MediaStore
	if cfg.StorageBucket != "" {
		bucket, err := services.NewStorageBucket(ctx, fbApp, cfg.StorageBucket)
		if err != nil {
			return fmt.Errorf("an error occurred while connecting to the user uploads bucket: %w", err)
		}
		media = bucket
	} else {
		log.Println("STORAGE_BUCKET not set, media references will not be checked")
	}

	var rateLimiter gin.HandlerFunc
	if cfg.RedisURL != "" {
		redisClient, err := services.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("an error occurred while connecting to redis: %w", err)
		}
		defer redisClient.Close()
		rateLimiter = middleware.RateLimit(redisClient, cfg.RateLimitPerMinute)
	} else {
		log.Println("REDIS_URL not set, rate limiting disabled")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	guards := routes.NewGuards(db, authClient, rateLimiter)
	votes := controllers.NewVoteController(db)

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddUserRoutes(&r.RouterGroup, db, controllers.NewUserController(db), authClient)
	routes.AddCommunityRoutes(&r.RouterGroup, controllers.NewCommunityController(db), guards)
	routes.AddPostRoutes(&r.RouterGroup, controllers.NewPostController(db, media), votes, guards)
	routes.AddCommentRoutes(&r.RouterGroup, controllers.NewCommentController(db), votes, guards)

	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("error when attempting to run web server: %w", err)
	}
	return nil
}
