package linkedin

import (
	"context"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/schedule"
)

// DryRunPoster logs posts instead of publishing them. It stands in for
// the real client until credentials are configured.
type DryRunPoster struct{}

func (DryRunPoster) Publish(_ context.Context, content string) error {
	debuglog.Infof("dry run: would publish %d chars", len(content))
	return nil
}

// NewPoster returns the publisher selected by the config: a DryRunPoster
// when dry_run is set or no access token is present, the real API
// client otherwise.
func NewPoster(cfg config.LinkedInConfig) schedule.Poster {
	if cfg.DryRun || cfg.AccessToken == "" {
		return DryRunPoster{}
	}
	return NewClient(cfg)
}
