package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/justsurfingit/talent-matrix/internal/cache"
	"github.com/justsurfingit/talent-matrix/internal/config"
	"github.com/justsurfingit/talent-matrix/internal/database"
	"github.com/justsurfingit/talent-matrix/internal/handlers"
	"github.com/justsurfingit/talent-matrix/internal/httpclient"
	"github.com/justsurfingit/talent-matrix/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Cache: Redis when configured, in-process otherwise
	var store cache.Store = cache.NewMemory(cfg.CacheTTL)
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			slog.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
		} else {
			store = redisStore
		}
	}
	defer store.Close()

	// 4. Outbound services
	client := httpclient.New(httpclient.Options{MinDelay: cfg.HTTPMinDelay, Timeout: cfg.StageTimeout})
	leetcodeService := services.NewLeetCodeService(client, cfg.LeetCodeGraphQLURL, store)
	resumeService := services.NewResumeService(client)
	searchService := services.NewJobSearchService(client, cfg.LinkedInSearchURL, store)
	scraperService := services.NewScraperService(client, cfg.ScrapeTimeout, cfg.ScrapeConcurrency)
	llmService, err := services.NewLLMService(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	// 5. Profile store services
	studentService := services.NewStudentService(db)
	projectService := services.NewProjectService(db)
	jobService := services.NewJobService(db)
	codingStats := services.NewCodingStatsService(client, leetcodeService, cfg.CodeforcesAPIURL, cfg.GitHubAPIURL)
	dashboardService := services.NewDashboardService(studentService, projectService, jobService, codingStats)

	careerService := &services.CareerService{
		Resume:          resumeService,
		Stats:           leetcodeService,
		Roles:           llmService,
		Jobs:            searchService,
		Scraper:         scraperService,
		Students:        studentService,
		StageTimeout:    cfg.StageTimeout,
		DefaultLocation: cfg.DefaultJobLocation,
	}

	// 6. Handlers and routes
	r := handlers.NewRouter(cfg, &handlers.Handlers{
		Students: handlers.NewStudentHandler(studentService, dashboardService),
		Projects: handlers.NewProjectHandler(projectService),
		Jobs:     handlers.NewJobHandler(searchService, jobService, cfg.DefaultJobLocation),
		Career:   handlers.NewCareerHandler(careerService, resumeService),
	})

	slog.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
