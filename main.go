package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	// Initialize MongoDB connection
	utils.InitMongoClient()
}

type app struct {
	board      *usecase.BoardService
	settings   *usecase.SettingsService
	transfer   *usecase.TransferService
	advisor    *usecase.AdvisorService
	subsRepo   *repository.SubscriptionsRepo
	pushSched  *services.PushScheduler
	transcribe *services.TranscribeClient
}

func buildApp(ctx context.Context) (*app, error) {
	settingsRepo := repository.GetSettingsRepo(utils.MongoClient)
	settingsSvc, err := usecase.NewSettingsService(ctx, settingsRepo)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	subsRepo := repository.GetSubscriptionsRepo(utils.MongoClient)
	pushSender := services.NewPushSender(
		os.Getenv("VAPID_PUBLIC_KEY"),
		os.Getenv("VAPID_PRIVATE_KEY"),
		os.Getenv("VAPID_SUBJECT"),
	)
	if !pushSender.Configured() {
		log.Println("VAPID keys not set, push delivery disabled")
	}
	notifier := &services.PushNotifier{
		Sender:        pushSender,
		Subscriptions: subsRepo,
	}
	scheduler := services.NewReminderScheduler(notifier, settingsSvc.Current)

	boardRepo := repository.GetBoardRepo(utils.MongoClient)
	boardSvc, err := usecase.NewBoardService(ctx, boardRepo, scheduler)
	if err != nil {
		return nil, fmt.Errorf("loading board: %w", err)
	}
	scheduler.Reset(boardSvc.Snapshot().Tasks)

	cooldown, err := services.NewCooldownGuard(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Printf("redis unavailable, using in-memory cooldown: %v", err)
		cooldown, _ = services.NewCooldownGuard("")
	}

	return &app{
		board:     boardSvc,
		settings:  settingsSvc,
		transfer:  usecase.NewTransferService(boardSvc, settingsSvc),
		advisor:   usecase.NewAdvisorService(boardSvc, settingsSvc, cooldown, os.Getenv("AI_API_URL"), os.Getenv("AI_API_KEY")),
		subsRepo:  subsRepo,
		pushSched: services.NewPushScheduler(pushSender),
		transcribe: services.NewTranscribeClient(
			os.Getenv("TRANSCRIBE_API_URL"),
			os.Getenv("TRANSCRIBE_API_TOKEN"),
		),
	}, nil
}

func setupRouter(a *app) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RecoveryMiddleware())

	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.PrometheusHandler())

	api := router.Group("/api")
	{
		categories := api.Group("/categories")
		{
			categories.GET("/", func(c *gin.Context) {
				handler.GetCategoriesHandler(c, a.board)
			})
			categories.POST("/", func(c *gin.Context) {
				handler.CreateCategoryHandler(c, a.board)
			})
			categories.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteCategoryHandler(c, a.board)
			})
			categories.POST("/:id/activate", func(c *gin.Context) {
				handler.ActivateCategoryHandler(c, a.board)
			})
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("/", func(c *gin.Context) {
				handler.GetTasksHandler(c, a.board)
			})
			tasks.POST("/", func(c *gin.Context) {
				handler.CreateTaskHandler(c, a.board)
			})
			tasks.PUT("/:id", func(c *gin.Context) {
				handler.UpdateTaskHandler(c, a.board)
			})
			tasks.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteTaskHandler(c, a.board)
			})
			tasks.POST("/:id/toggle", func(c *gin.Context) {
				handler.ToggleTaskHandler(c, a.board)
			})
			tasks.POST("/:id/priority", func(c *gin.Context) {
				handler.CyclePriorityHandler(c, a.board)
			})
			tasks.POST("/:id/snooze", func(c *gin.Context) {
				handler.SnoozeTaskHandler(c, a.board)
			})
			tasks.POST("/reorder", func(c *gin.Context) {
				handler.ReorderTasksHandler(c, a.board)
			})
			tasks.POST("/clear-completed", func(c *gin.Context) {
				handler.ClearCompletedHandler(c, a.board)
			})
			tasks.GET("/search", func(c *gin.Context) {
				handler.SearchTasksHandler(c, a.board)
			})
		}

		api.POST("/quickadd", func(c *gin.Context) {
			handler.QuickAddHandler(c, a.board)
		})
		api.GET("/stats", func(c *gin.Context) {
			handler.GetStatsHandler(c, a.board)
		})
		api.GET("/export", func(c *gin.Context) {
			handler.ExportHandler(c, a.transfer)
		})
		api.POST("/import", func(c *gin.Context) {
			handler.ImportHandler(c, a.transfer)
		})

		advisor := api.Group("/advisor")
		{
			advisor.POST("/", func(c *gin.Context) {
				handler.AdvisorHandler(c, a.advisor)
			})
			advisor.POST("/apply", func(c *gin.Context) {
				handler.ApplySuggestionsHandler(c, a.advisor)
			})
		}

		push := api.Group("/push")
		{
			push.POST("/subscribe", func(c *gin.Context) {
				handler.SubscribeHandler(c, a.subsRepo)
			})
			push.POST("/unsubscribe", func(c *gin.Context) {
				handler.UnsubscribeHandler(c, a.subsRepo)
			})
			push.POST("/schedule", func(c *gin.Context) {
				handler.PushScheduleHandler(c, a.pushSched, a.settings)
			})
		}

		api.GET("/settings", func(c *gin.Context) {
			handler.GetSettingsHandler(c, a.settings)
		})
		api.PUT("/settings", func(c *gin.Context) {
			handler.UpdateSettingsHandler(c, a.settings, a.board)
		})

		api.POST("/transcribe", func(c *gin.Context) {
			handler.TranscribeHandler(c, a.transcribe)
		})
	}

	return router
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := buildApp(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	utils.StartSystemMetrics(utils.GetEnvAsDuration("SYSTEM_METRICS_INTERVAL", 15*time.Second))

	router := setupRouter(a)

	port := utils.GetEnvAsString("PORT", "8080")

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
