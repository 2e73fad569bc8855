package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/devconnector/api/internal/config"
	apperrors "github.com/devconnector/api/pkg/util"
)

const (
	MessageNoGitHubProfile = "No GitHub profile found"

	githubCachePrefix = "github:repos:"
)

// RepoCache stores raw upstream responses.
type RepoCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// GitHubService fetches a user's latest public repositories.
type GitHubService struct {
	client   *resty.Client
	cfg      config.GitHubConfig
	cache    RepoCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewGitHubService builds the client. cache may be nil.
func NewGitHubService(cfg config.GitHubConfig, cache RepoCache, logger *zap.Logger) *GitHubService {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout()).
		SetHeader("User-Agent", "devconnector-api").
		SetHeader("Accept", "application/vnd.github+json")

	client.OnError(func(req *resty.Request, err error) {
		logger.Warn("github call failed", zap.String("url", req.URL), zap.Error(err))
	})

	return &GitHubService{
		client:   client,
		cfg:      cfg,
		cache:    cache,
		cacheTTL: cfg.CacheTTL(),
		logger:   logger,
	}
}

// Repos returns the five oldest-created repositories of username as raw JSON.
func (s *GitHubService) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewNotFound(MessageNoGitHubProfile)
	}
	key := githubCachePrefix + strings.ToLower(username)

	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	req := s.client.R().
		SetContext(ctx).
		SetPathParam("username", username).
		SetQueryParams(map[string]string{
			"per_page": "5",
			"sort":     "created:asc",
		})
	if s.cfg.ClientID != "" && s.cfg.ClientSecret != "" {
		req.SetQueryParam("client_id", s.cfg.ClientID)
		req.SetQueryParam("client_secret", s.cfg.ClientSecret)
	}

	resp, err := req.Get("/users/{username}/repos")
	if err != nil {
		return nil, apperrors.NewDomainError("UPSTREAM_UNAVAILABLE", "GitHub is unavailable", http.StatusBadGateway)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apperrors.NewNotFound(MessageNoGitHubProfile)
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, apperrors.NewInternalError(errors.New("github returned invalid json"))
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, body, s.cacheTTL); err != nil {
			s.logger.Warn("github cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return json.RawMessage(body), nil
}

func (s *GitHubService) cached(ctx context.Context, key string) (json.RawMessage, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("github cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok || !json.Valid(value) {
		return nil, false
	}
	return json.RawMessage(value), true
}
