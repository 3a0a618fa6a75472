package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Content  ContentConfig  `mapstructure:"content" toml:"content"`
	Posts    PostsConfig    `mapstructure:"posts" toml:"posts"`
	Schedule ScheduleConfig `mapstructure:"schedule" toml:"schedule"`
	Sources  SourcesConfig  `mapstructure:"sources" toml:"sources"`
	LinkedIn LinkedInConfig `mapstructure:"linkedin" toml:"linkedin"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path" toml:"path"`
	Timeout     time.Duration `mapstructure:"timeout" toml:"timeout"`
	SearchIndex string        `mapstructure:"search_index" toml:"search_index"`
}

type ContentConfig struct {
	MinPostLength   int      `mapstructure:"min_post_length" toml:"min_post_length"`
	MaxPostLength   int      `mapstructure:"max_post_length" toml:"max_post_length"`
	MaxHashtags     int      `mapstructure:"max_hashtags" toml:"max_hashtags"`
	MinContentScore float64  `mapstructure:"min_content_score" toml:"min_content_score"`
	DefaultHashtags []string `mapstructure:"default_hashtags" toml:"default_hashtags"`
}

type PostsConfig struct {
	Templates []string `mapstructure:"templates" toml:"templates"`
	MaxPosts  int      `mapstructure:"max_posts" toml:"max_posts"`
}

type ScheduleConfig struct {
	PostingTimes     []string      `mapstructure:"posting_times" toml:"posting_times"`
	MaxPostsPerDay   int           `mapstructure:"max_posts_per_day" toml:"max_posts_per_day"`
	MinIntervalHours int           `mapstructure:"min_interval_hours" toml:"min_interval_hours"`
	TickInterval     time.Duration `mapstructure:"tick_interval" toml:"tick_interval"`
}

type SourcesConfig struct {
	HTTPTimeout time.Duration  `mapstructure:"http_timeout" toml:"http_timeout"`
	UserAgent   string         `mapstructure:"user_agent" toml:"user_agent"`
	MaxArticles int            `mapstructure:"max_articles" toml:"max_articles"`
	Feeds       []SourceConfig `mapstructure:"feeds" toml:"feeds"`
}

// SourceConfig describes a single newsletter source. Kind selects the
// parser: "rss" for feed XML, "html" for scraping article markup.
type SourceConfig struct {
	Name string `mapstructure:"name" toml:"name"`
	URL  string `mapstructure:"url" toml:"url"`
	Kind string `mapstructure:"kind" toml:"kind"`
}

type LinkedInConfig struct {
	AccessToken string `mapstructure:"access_token" toml:"access_token"`
	AuthorURN   string `mapstructure:"author_urn" toml:"author_urn"`
	APIBaseURL  string `mapstructure:"api_base_url" toml:"api_base_url"`
	DryRun      bool   `mapstructure:"dry_run" toml:"dry_run"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Path:        filepath.Join(homeDir, ".linkedpost.db"),
			Timeout:     1 * time.Second,
			SearchIndex: "",
		},
		Content: ContentConfig{
			MinPostLength:   100,
			MaxPostLength:   1300,
			MaxHashtags:     5,
			MinContentScore: 0.5,
			DefaultHashtags: []string{"#AI", "#TechNews", "#Innovation"},
		},
		Posts: PostsConfig{
			Templates: nil,
			MaxPosts:  5,
		},
		Schedule: ScheduleConfig{
			PostingTimes:     []string{"09:00", "12:00", "17:00"},
			MaxPostsPerDay:   3,
			MinIntervalHours: 4,
			TickInterval:     60 * time.Second,
		},
		Sources: SourcesConfig{
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "linkedpost/1.0 (newsletter automation)",
			MaxArticles: 10,
			Feeds: []SourceConfig{
				{Name: "the_batch", URL: "https://www.deeplearning.ai/the-batch/", Kind: "html"},
				{Name: "data_points", URL: "https://www.deeplearning.ai/data-points/", Kind: "html"},
			},
		},
		LinkedIn: LinkedInConfig{
			AccessToken: "",
			AuthorURN:   "",
			APIBaseURL:  "https://api.linkedin.com",
			DryRun:      true,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(homeDir, ".linkedpost", "linkedpost.log"),
		},
	}
}

// Load reads TOML configuration via viper, applying defaults for missing
// keys and LINKEDPOST_* environment overrides. A missing config file falls
// back to defaults; an unreadable or malformed file is an error, so the
// caller never proceeds on a silently truncated configuration.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults are registered per leaf key so a file carrying a partial
	// section merges with the defaults instead of replacing the section.
	cfg := defaultConfig()
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)
	v.SetDefault("database.search_index", cfg.Database.SearchIndex)
	v.SetDefault("content.min_post_length", cfg.Content.MinPostLength)
	v.SetDefault("content.max_post_length", cfg.Content.MaxPostLength)
	v.SetDefault("content.max_hashtags", cfg.Content.MaxHashtags)
	v.SetDefault("content.min_content_score", cfg.Content.MinContentScore)
	v.SetDefault("content.default_hashtags", cfg.Content.DefaultHashtags)
	v.SetDefault("posts.templates", cfg.Posts.Templates)
	v.SetDefault("posts.max_posts", cfg.Posts.MaxPosts)
	v.SetDefault("schedule.posting_times", cfg.Schedule.PostingTimes)
	v.SetDefault("schedule.max_posts_per_day", cfg.Schedule.MaxPostsPerDay)
	v.SetDefault("schedule.min_interval_hours", cfg.Schedule.MinIntervalHours)
	v.SetDefault("schedule.tick_interval", cfg.Schedule.TickInterval)
	v.SetDefault("sources.http_timeout", cfg.Sources.HTTPTimeout)
	v.SetDefault("sources.user_agent", cfg.Sources.UserAgent)
	v.SetDefault("sources.max_articles", cfg.Sources.MaxArticles)
	v.SetDefault("sources.feeds", cfg.Sources.Feeds)
	v.SetDefault("linkedin.access_token", cfg.LinkedIn.AccessToken)
	v.SetDefault("linkedin.author_urn", cfg.LinkedIn.AuthorURN)
	v.SetDefault("linkedin.api_base_url", cfg.LinkedIn.APIBaseURL)
	v.SetDefault("linkedin.dry_run", cfg.LinkedIn.DryRun)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "linkedpost")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LINKEDPOST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	if cfg.Database.SearchIndex != "" {
		cfg.Database.SearchIndex = expandPath(cfg.Database.SearchIndex)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
}

// Save writes the configuration as TOML.
func Save(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Default returns a fresh config with all defaults applied.
func Default() *Config {
	return defaultConfig()
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
