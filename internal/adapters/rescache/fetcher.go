package rescache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"go.trai.ch/xmlres/internal/build"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/zerr"
)

// UserAgent is sent with every download.
func UserAgent() string {
	return fmt.Sprintf("xmlres/%s (%s %s)", build.Version, runtime.GOOS, runtime.GOARCH)
}

// HTTPFetcher implements ports.Fetcher for http and https resources.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxRedirects int
}

// NewHTTPFetcher creates a fetcher with the given request timeout and redirect limit.
func NewHTTPFetcher(timeout time.Duration, maxRedirects int) *HTTPFetcher {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPTimeout
	}
	return newHTTPFetcherWithClient(&http.Client{Timeout: timeout}, maxRedirects)
}

// newHTTPFetcherWithClient creates a fetcher around a custom client (used for testing).
func newHTTPFetcherWithClient(client *http.Client, maxRedirects int) *HTTPFetcher {
	if maxRedirects < 0 {
		maxRedirects = domain.DefaultMaxRedirects
	}
	f := &HTTPFetcher{
		userAgent:    UserAgent(),
		maxRedirects: maxRedirects,
	}
	c := *client
	c.CheckRedirect = f.checkRedirect
	f.client = &c
	return f
}

// Fetch downloads uri. The caller must close the returned body.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	scheme := domain.URIScheme(uri)
	if !isHTTPScheme(scheme) {
		return nil, unsupportedProtocol(scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidURI.Error()), "uri", uri)
	}
	req.Header.Set("User-Agent", f.userAgent)

	//nolint:gosec // Downloading user referenced grammars is the purpose of the cache
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "uri", uri)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		statusErr := zerr.With(zerr.Wrap(domain.ErrDownloadFailed, "unexpected response"), "status_code", resp.StatusCode)
		return nil, zerr.With(statusErr, "uri", uri)
	}
	return resp.Body, nil
}

func (f *HTTPFetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > f.maxRedirects {
		return zerr.With(zerr.Wrap(domain.ErrTooManyRedirects, "redirect refused"), "max", f.maxRedirects)
	}
	scheme := req.URL.Scheme
	if !isHTTPScheme(scheme) {
		return unsupportedProtocol(scheme)
	}
	if via[0].URL.Scheme == "https" && scheme == "http" {
		return zerr.With(zerr.Wrap(domain.ErrInsecureRedirect, "redirect refused"), "location", req.URL.Redacted())
	}
	req.Header.Set("User-Agent", f.userAgent)
	return nil
}

func isHTTPScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

func unsupportedProtocol(scheme string) error {
	return zerr.With(zerr.Wrap(domain.ErrUnsupportedProtocol, "cannot download"), "protocol", scheme)
}
