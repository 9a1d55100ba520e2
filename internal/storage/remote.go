package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rewired-gh/launchdash/internal/logger"
)

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// fetch downloads a remote dataset into a temporary file and loads it from there.
func fetch(ctx context.Context, rawURL string, opts Options) (*Dataset, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset URL: %w", err)
	}

	format, err := resolveFormat(u.Path, opts.Format)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	resp, err := doRequest(ctx, client, rawURL, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "launchdash-*"+path.Ext(u.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset: %w", err)
	}
	logger.Debug("Downloaded %d bytes from %s", n, rawURL)

	records, err := loadFile(tmp.Name(), format, opts.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s dataset %s: %w", format, rawURL, err)
	}
	return New(records, rawURL), nil
}

// doRequest performs the GET with retry logic. Transport errors and 5xx
// responses are retried with a linear backoff; other non-200 statuses fail at once.
func doRequest(ctx context.Context, client *http.Client, rawURL string, opts Options) (*http.Response, error) {
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	delay := opts.RetryDelayBase
	if delay <= 0 {
		delay = time.Second
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay * time.Duration(i)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			logger.Warn("Dataset download attempt %d/%d failed: %v", i+1, maxRetries, err)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			logger.Warn("Dataset download attempt %d/%d failed: %v", i+1, maxRetries, lastErr)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
