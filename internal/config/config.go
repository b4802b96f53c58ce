package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting of the API. Values come from the
// environment (optionally seeded from a .env file by main).
type Config struct {
	Port        string
	DatabaseURL string

	LLMProvider string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string

	LeetCodeGraphQLURL string
	CodeforcesAPIURL   string
	GitHubAPIURL       string
	LinkedInSearchURL  string

	RedisURL string
	CacheTTL time.Duration

	StageTimeout       time.Duration
	ScrapeTimeout      time.Duration
	ScrapeConcurrency  int
	DefaultJobLocation string
	HTTPMinDelay       time.Duration

	CORSAllowOrigins []string
}

// Load reads the configuration from the environment and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        getenv("DATABASE_URL", "host=localhost user=postgres password=password dbname=talentmatrix port=5432 sslmode=disable"),
		LLMProvider:        strings.ToLower(getenv("LLM_PROVIDER", "openai")),
		LeetCodeGraphQLURL: getenv("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
		CodeforcesAPIURL:   getenv("CODEFORCES_API_URL", "https://codeforces.com/api"),
		GitHubAPIURL:       getenv("GITHUB_API_URL", "https://api.github.com"),
		LinkedInSearchURL:  getenv("LINKEDIN_SEARCH_URL", "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"),
		RedisURL:           os.Getenv("REDIS_URL"),
		DefaultJobLocation: getenv("DEFAULT_JOB_LOCATION", "India"),
	}

	switch cfg.LLMProvider {
	case "openai":
		cfg.LLMAPIKey = firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("PERPLEXITY_API_KEY"))
		cfg.LLMBaseURL = getenv("LLM_BASE_URL", "https://api.perplexity.ai")
		cfg.LLMModel = getenv("LLM_MODEL", "sonar-pro")
	case "googleai":
		cfg.LLMAPIKey = firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("GEMINI_API_KEY"))
		cfg.LLMModel = getenv("LLM_MODEL", "gemini-2.5-flash")
	default:
		return nil, fmt.Errorf("config: unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StageTimeout, err = durationEnv("STAGE_TIMEOUT", 45*time.Second); err != nil {
		return nil, err
	}
	if cfg.ScrapeTimeout, err = durationEnv("SCRAPE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPMinDelay, err = durationEnv("HTTP_MIN_DELAY", 0); err != nil {
		return nil, err
	}
	if cfg.ScrapeConcurrency, err = intEnv("SCRAPE_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.ScrapeConcurrency < 1 {
		return nil, fmt.Errorf("config: SCRAPE_CONCURRENCY must be positive, got %d", cfg.ScrapeConcurrency)
	}

	for _, o := range strings.Split(getenv("CORS_ALLOW_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
		}
	}

	return cfg, nil
}

// AllowAllOrigins reports whether CORS should accept any origin.
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSAllowOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %w", key, err)
	}
	return n, nil
}
