package linkedin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharikabalu/Linkedin-post-automation/internal/config"
)

func testLinkedInConfig(baseURL string) config.LinkedInConfig {
	return config.LinkedInConfig{
		AccessToken: "token-123",
		AuthorURN:   "urn:li:person:abc",
		APIBaseURL:  baseURL,
	}
}

func TestClientPublish(t *testing.T) {
	var gotPath, gotAuth, gotProto string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotProto = r.Header.Get("X-Restli-Protocol-Version")

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("X-RestLi-Id", "urn:li:share:42")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(testLinkedInConfig(server.URL))
	err := client.Publish(context.Background(), "Hello network")
	require.NoError(t, err)

	assert.Equal(t, "/v2/ugcPosts", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "2.0.0", gotProto)

	assert.Equal(t, "urn:li:person:abc", gotBody["author"])
	assert.Equal(t, "PUBLISHED", gotBody["lifecycleState"])

	specific := gotBody["specificContent"].(map[string]any)
	share := specific["com.linkedin.ugc.ShareContent"].(map[string]any)
	commentary := share["shareCommentary"].(map[string]any)
	assert.Equal(t, "Hello network", commentary["text"])
	assert.Equal(t, "NONE", share["shareMediaCategory"])

	visibility := gotBody["visibility"].(map[string]any)
	assert.Equal(t, "PUBLIC", visibility["com.linkedin.ugc.MemberNetworkVisibility"])
}

func TestClientPublish_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"expired token"}`)
	}))
	defer server.Close()

	client := NewClient(testLinkedInConfig(server.URL))
	err := client.Publish(context.Background(), "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "expired token")
}

func TestClientPublish_MissingCredentials(t *testing.T) {
	client := NewClient(config.LinkedInConfig{AuthorURN: "urn:li:person:abc"})
	err := client.Publish(context.Background(), "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token")

	client = NewClient(config.LinkedInConfig{AccessToken: "token"})
	err = client.Publish(context.Background(), "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author URN")
}

func TestDryRunPoster(t *testing.T) {
	err := DryRunPoster{}.Publish(context.Background(), "anything")
	assert.NoError(t, err)
}

func TestNewPoster(t *testing.T) {
	dry := NewPoster(config.LinkedInConfig{DryRun: true, AccessToken: "token"})
	assert.IsType(t, DryRunPoster{}, dry)

	noToken := NewPoster(config.LinkedInConfig{DryRun: false})
	assert.IsType(t, DryRunPoster{}, noToken)

	real := NewPoster(config.LinkedInConfig{AccessToken: "token", AuthorURN: "urn:li:person:abc"})
	assert.IsType(t, &Client{}, real)
}
