// Package release looks up the latest published opkv release on GitHub
// and compares it against the running build. Used only by
// `opkv version --check`; nothing on the secret-read path touches the
// network.
package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/opkv-dev/opkv/internal/config"
)

// Repo is the GitHub repository releases are published to.
const Repo = "opkv-dev/opkv"

// Info describes the latest published release.
type Info struct {
	// Tag is the release tag as published (e.g. "v0.2.0").
	Tag string

	// Version is the tag with any leading "v" stripped.
	Version string
}

// Status is the outcome of comparing the running build to the latest
// release.
type Status struct {
	Current string
	Latest  Info

	// UpdateAvailable is true when the latest release is newer than
	// the running build.
	UpdateAvailable bool
}

// Resolver queries the GitHub releases API. Construct with New.
type Resolver struct {
	client        *github.Client
	authenticated bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseURL points the resolver at an alternate API endpoint.
// Used by tests to target an httptest server.
func WithBaseURL(raw string) Option {
	return func(r *Resolver) {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		client, err := r.client.WithEnterpriseURLs(raw, raw)
		if err != nil {
			// Only reachable with a malformed test URL.
			panic(fmt.Sprintf("release: invalid base URL %q: %v", raw, err))
		}
		r.client = client
	}
}

// New creates a resolver. When GITHUB_TOKEN is set, requests are
// authenticated with it; unauthenticated requests work but share the
// low anonymous rate limit. The HTTP timeout comes from
// OPKV_API_TIMEOUT (default 30s).
func New(opts ...Option) *Resolver {
	httpClient := &http.Client{Timeout: config.GetAPITimeout()}
	authenticated := false

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
		authenticated = true
	}

	r := &Resolver{
		client:        github.NewClient(httpClient),
		authenticated: authenticated,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Latest returns the most recent published release of Repo.
func (r *Resolver) Latest(ctx context.Context) (*Info, error) {
	owner, name, _ := strings.Cut(Repo, "/")

	rel, _, err := r.client.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			hint := "set GITHUB_TOKEN to raise the limit"
			if r.authenticated {
				hint = "wait until the limit resets"
			}
			return nil, fmt.Errorf("GitHub rate limit exceeded (resets %s); %s",
				rateErr.Rate.Reset.Time.Format("15:04 MST"), hint)
		}
		return nil, fmt.Errorf("fetching latest release of %s: %w", Repo, err)
	}

	tag := rel.GetTagName()
	if tag == "" {
		return nil, fmt.Errorf("latest release of %s has no tag", Repo)
	}
	return &Info{Tag: tag, Version: strings.TrimPrefix(tag, "v")}, nil
}

// Check compares the current build version against the latest release.
// Dev pseudo-versions ("dev-abc123") are not comparable; Check reports
// them as up to date rather than failing.
func (r *Resolver) Check(ctx context.Context, current string) (*Status, error) {
	latest, err := r.Latest(ctx)
	if err != nil {
		return nil, err
	}

	status := &Status{Current: current, Latest: *latest}

	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		// Dev build; nothing meaningful to compare.
		return status, nil
	}
	lat, err := semver.NewVersion(latest.Version)
	if err != nil {
		return nil, fmt.Errorf("release tag %q is not a semantic version", latest.Tag)
	}

	status.UpdateAvailable = lat.GreaterThan(cur)
	return status, nil
}
