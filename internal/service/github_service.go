package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/devconnect/devconnect-api/internal/config"
)

var ErrNoGithubProfile = errors.New("no github profile found")

// GithubRepo is the subset of the upstream repo listing the API exposes.
type GithubRepo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// RepoCache is the best-effort cache in front of the upstream lookup. A miss
// and a cache failure look the same to the caller.
type RepoCache interface {
	GetJSON(ctx context.Context, key string, out interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// GithubService proxies the public repository listing for a GitHub username:
// one outbound GET per call, fixed 5-item page sorted by creation ascending,
// no retries.
type GithubService struct {
	cfg    *config.Config
	client *http.Client
	cache  RepoCache
}

func NewGithubService(cfg *config.Config, cache RepoCache) *GithubService {
	return &GithubService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}
}

func (s *GithubService) ReposFor(ctx context.Context, username string) ([]GithubRepo, error) {
	cacheKey := "github:repos:" + username

	if s.cache != nil {
		var cached []GithubRepo
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			log.Printf("github repo cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created")
	query.Set("direction", "asc")
	if s.cfg.GithubClientID != "" {
		query.Set("client_id", s.cfg.GithubClientID)
		query.Set("client_secret", s.cfg.GithubClientSecret)
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s",
		s.cfg.GithubAPIBaseURL, url.PathEscape(username), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devconnect-api")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoGithubProfile
	}

	var repos []GithubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decoding github response: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, repos, s.cfg.GithubCacheTTL); err != nil {
			log.Printf("github repo cache write failed: %v", err)
		}
	}

	return repos, nil
}
