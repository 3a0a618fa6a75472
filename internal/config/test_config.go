package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database.Path = ":memory:"
	cfg.Sources.HTTPTimeout = 5 * time.Second
	cfg.Sources.UserAgent = "linkedpost-test/1.0"
	cfg.Schedule.TickInterval = 10 * time.Millisecond
	cfg.LinkedIn.DryRun = true
	cfg.Log.File = ""
	return cfg
}
