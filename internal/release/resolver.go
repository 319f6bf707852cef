package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/oshokin/grokker-shim/internal/logger"
	"github.com/oshokin/grokker-shim/internal/platform"
)

// Resolver fetches release metadata and picks the platform asset.
type Resolver struct {
	// client is the GitHub REST API client.
	client *github.Client
}

// Option configures a Resolver.
type Option func(*resolverOptions)

type resolverOptions struct {
	baseURL   string
	token     string
	userAgent string
}

// WithBaseURL points the resolver at another API root (GitHub Enterprise, tests).
func WithBaseURL(baseURL string) Option {
	return func(o *resolverOptions) {
		o.baseURL = baseURL
	}
}

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(o *resolverOptions) {
		o.token = token
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *resolverOptions) {
		o.userAgent = userAgent
	}
}

// NewResolver builds a Resolver on top of httpClient (nil means http.DefaultClient).
func NewResolver(httpClient *http.Client, opts ...Option) (*Resolver, error) {
	var o resolverOptions
	for _, opt := range opts {
		opt(&o)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if o.token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		tokenClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token}))
		// oauth2 only carries the transport over.
		tokenClient.Timeout = httpClient.Timeout
		httpClient = tokenClient
	}

	client := github.NewClient(httpClient)

	if o.userAgent != "" {
		client.UserAgent = o.userAgent
	}

	if o.baseURL != "" {
		baseURL, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse API base URL: %w", err)
		}

		// The client resolves relative paths against BaseURL and requires a trailing slash.
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}

		client.BaseURL = baseURL
	}

	return &Resolver{client: client}, nil
}

// Resolve fetches the latest release of repository and returns the asset for id.
// Unknown platforms fail before any request is sent.
func (r *Resolver) Resolve(ctx context.Context, repository string, id platform.ID) (*Asset, error) {
	if _, err := id.RequireTraits(); err != nil {
		return nil, err
	}

	meta, err := r.Latest(ctx, repository)
	if err != nil {
		return nil, err
	}

	asset, err := SelectAsset(meta, id)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Resolved release asset",
		"repository", repository, "tag", meta.TagName, "asset", asset.Name)

	return asset, nil
}

// Latest fetches the latest published release of repository.
func (r *Resolver) Latest(ctx context.Context, repository string) (*Metadata, error) {
	owner, repo, err := ParseRepository(repository)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Fetching latest release", "owner", owner, "repo", repo)

	rel, _, err := r.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			resetIn := time.Until(rateErr.Rate.Reset.Time).Round(time.Second)

			return nil, fmt.Errorf("%w: rate limit exceeded, try again in %s: %w", ErrMetadataFetch, resetIn, err)
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrMetadataFetch, repository, err)
	}

	return fromGitHub(rel), nil
}

// fromGitHub keeps only the fields needed for asset selection and download.
func fromGitHub(rel *github.RepositoryRelease) *Metadata {
	meta := &Metadata{
		TagName: rel.GetTagName(),
		Assets:  make([]Asset, 0, len(rel.Assets)),
	}

	for _, a := range rel.Assets {
		meta.Assets = append(meta.Assets, Asset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
		})
	}

	return meta
}

// ParseRepository splits an "owner/repo" identifier into its parts.
func ParseRepository(repository string) (string, string, error) {
	owner, repo, found := strings.Cut(strings.TrimSpace(repository), "/")
	if !found || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%q: %w", repository, ErrInvalidRepository)
	}

	return owner, repo, nil
}
