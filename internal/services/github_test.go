package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGithubClient_Repos(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/octocat/repos", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"repo1"},{"name":"repo2"}]`))
	}))
	defer srv.Close()

	c := NewGithubClient("", "")
	c.Endpoint = srv.URL

	repos, err := c.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 2)
}

func TestGithubClient_UserNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewGithubClient("", "")
	c.Endpoint = srv.URL

	_, err := c.Repos(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrGithubUserNotFound)
}
