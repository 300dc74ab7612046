package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrGithubUserNotFound = errors.New("no GitHub user found")

// GithubClient fetches a user's most recently created public repositories.
type GithubClient struct {
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Endpoint     string
}

func NewGithubClient(clientID, clientSecret string) *GithubClient {
	return &GithubClient{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     "https://api.github.com",
		HTTPClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

// Repos returns up to five repositories for username, decoded as raw JSON so
// the response body is proxied through unchanged.
func (c *GithubClient) Repos(ctx context.Context, username string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.ClientID != "" {
		q.Set("client_id", c.ClientID)
		q.Set("client_secret", c.ClientSecret)
	}

	reqURL := fmt.Sprintf("%s/users/%s/repos?%s", c.Endpoint, url.PathEscape(username), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devconnector-backend")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGithubUserNotFound
	}

	var repos []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}
