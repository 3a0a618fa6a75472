package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
	"github.com/Tharikabalu/Linkedin-post-automation/internal/debuglog"
)

const defaultAPIBaseURL = "https://api.linkedin.com"

// Client publishes text shares through the LinkedIn UGC posts API.
type Client struct {
	accessToken string
	authorURN   string
	baseURL     string
	client      *http.Client
}

type ugcPost struct {
	Author          string             `json:"author"`
	LifecycleState  string             `json:"lifecycleState"`
	SpecificContent ugcSpecificContent `json:"specificContent"`
	Visibility      map[string]string  `json:"visibility"`
}

type ugcSpecificContent struct {
	ShareContent ugcShareContent `json:"com.linkedin.ugc.ShareContent"`
}

type ugcShareContent struct {
	ShareCommentary    ugcText `json:"shareCommentary"`
	ShareMediaCategory string  `json:"shareMediaCategory"`
}

type ugcText struct {
	Text string `json:"text"`
}

func NewClient(cfg config.LinkedInConfig) *Client {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &Client{
		accessToken: cfg.AccessToken,
		authorURN:   cfg.AuthorURN,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Publish creates a public text share for the configured author.
func (c *Client) Publish(ctx context.Context, content string) error {
	if c.accessToken == "" {
		return fmt.Errorf("missing access token")
	}
	if c.authorURN == "" {
		return fmt.Errorf("missing author URN")
	}

	body := ugcPost{
		Author:         c.authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: ugcSpecificContent{
			ShareContent: ugcShareContent{
				ShareCommentary:    ugcText{Text: content},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/ugcPosts", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting share: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("linkedin returned status %d: %s", resp.StatusCode, detail)
	}

	debuglog.Infof("published share (urn %s)", resp.Header.Get("X-RestLi-Id"))
	return nil
}
