package main

import (
	"fmt"
	"os"

	"github.com/PsySom/ready-set-prompt/internal/config"
	"github.com/PsySom/ready-set-prompt/internal/handlers"
	"github.com/PsySom/ready-set-prompt/internal/insights"
	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/PsySom/ready-set-prompt/internal/middleware"
	"github.com/PsySom/ready-set-prompt/internal/repository"
	"github.com/PsySom/ready-set-prompt/internal/service"
	"github.com/PsySom/ready-set-prompt/internal/storage/sqlite"
	"github.com/PsySom/ready-set-prompt/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

// backends bundles the repository set for whichever storage driver is active.
type backends struct {
	entries         repository.TrackerEntryRepository
	activities      repository.ActivityRepository
	journals        repository.JournalRepository
	templates       repository.TemplateRepository
	recommendations repository.RecommendationRepository
	rules           repository.RuleRepository
	auth            gin.HandlerFunc
	close           func() error
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(os.Getenv("PSYSOM_LOG_LEVEL"))
	if cfg.Server.Env != "production" {
		logCfg.Format = "text"
	}
	log := logger.NewSlogLogger(logCfg)
	logger.SetDefault(log)

	log.Info("starting psysom api server",
		logger.String("env", cfg.Server.Env),
		logger.String("storage_driver", cfg.Storage.Driver),
	)

	be, err := newBackends(cfg)
	if err != nil {
		return err
	}
	if be.close != nil {
		defer be.close()
	}

	// Initialize services
	engine := insights.New(log)
	trackerService := service.NewTrackerService(be.entries)
	activityService := service.NewActivityService(be.activities, be.templates)
	journalService := service.NewJournalService(be.journals)
	insightsService := service.NewInsightsService(
		be.entries, be.activities, be.journals, be.recommendations, be.rules, engine)
	recommendationService := service.NewRecommendationService(
		be.entries, be.activities, be.journals, be.templates, be.recommendations, be.rules,
		engine,
		service.RecommendationConfig{
			WindowDays: cfg.Engine.WindowDays,
			TTLDays:    cfg.Engine.RecommendationTTLDays,
		},
		log,
	)

	// Initialize handlers
	trackerHandler := handlers.NewTrackerHandler(trackerService)
	activityHandler := handlers.NewActivityHandler(activityService)
	journalHandler := handlers.NewJournalHandler(journalService)
	insightsHandler := handlers.NewInsightsHandler(insightsService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.Default()

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(be.auth)
	{
		// Tracker entry routes
		protected.GET("/tracker/entries", trackerHandler.GetEntries)
		protected.POST("/tracker/entries", trackerHandler.CreateEntry)
		protected.DELETE("/tracker/entries/:id", trackerHandler.DeleteEntry)

		// Activity routes
		protected.GET("/activities", activityHandler.GetActivities)
		protected.POST("/activities", activityHandler.CreateActivity)
		protected.PATCH("/activities/:id", activityHandler.UpdateActivity)
		protected.POST("/activities/:id/toggle", activityHandler.ToggleComplete)
		protected.DELETE("/activities/:id", activityHandler.DeleteActivity)
		protected.GET("/activity-templates", activityHandler.ListTemplates)

		// Journal routes
		protected.GET("/journal/sessions", journalHandler.GetSessions)
		protected.POST("/journal/sessions", journalHandler.StartSession)
		protected.GET("/journal/sessions/:id", journalHandler.GetSession)
		protected.POST("/journal/sessions/:id/messages", journalHandler.AppendMessage)
		protected.POST("/journal/sessions/:id/end", journalHandler.EndSession)

		// Insights routes
		protected.GET("/insights", insightsHandler.GetInsights)
		protected.GET("/insights/export", middleware.RateLimitStrict(), insightsHandler.Export)

		// Recommendation routes
		protected.GET("/recommendations", recommendationHandler.GetRecommendations)
		protected.POST("/recommendations/generate", middleware.RateLimitStrict(), recommendationHandler.Generate)
		protected.POST("/recommendations/:id/accept", recommendationHandler.Accept)
		protected.POST("/recommendations/:id/dismiss", recommendationHandler.Dismiss)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// newBackends builds the repository set for the configured storage driver.
func newBackends(cfg *config.Config) (*backends, error) {
	switch cfg.Storage.Driver {
	case "supabase":
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		return &backends{
			entries:         repository.NewTrackerEntryRepository(client),
			activities:      repository.NewActivityRepository(client),
			journals:        repository.NewJournalRepository(client),
			templates:       repository.NewTemplateRepository(client),
			recommendations: repository.NewRecommendationRepository(client),
			rules:           repository.NewRuleRepository(client),
			auth:            middleware.Auth(client),
		}, nil

	case "sqlite":
		store, err := sqlite.NewStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &backends{
			entries:         store.TrackerEntries(),
			activities:      store.Activities(),
			journals:        store.Journals(),
			templates:       store.Templates(),
			recommendations: store.Recommendations(),
			rules:           store.Rules(),
			auth:            middleware.LocalAuth(),
			close:           store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
