package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/gabriel-vasile/mimetype"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"resty.dev/v3"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryDelay = 200 * time.Millisecond
)

// ErrNotText is returned when a URL serves something that is not a text document.
var ErrNotText = errors.New("remote content is not text")

// Fetcher downloads the text of a dictionary published at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Config struct {
	// CacheDirectory keeps downloads between runs. Empty disables caching.
	CacheDirectory string
	Timeout        time.Duration
	RetryAttempts  uint
	RetryDelay     time.Duration
}

type Reader struct {
	httpClient       *resty.Client
	fileCache        *FileCache
	maxRetryAttempts uint
	retryDelay       time.Duration
}

var _ Fetcher = (*Reader)(nil)

func NewReader(config Config) *Reader {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryDelay := config.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	client := resty.New()
	client.SetTimeout(timeout)

	reader := &Reader{
		httpClient:       client,
		maxRetryAttempts: config.RetryAttempts,
		retryDelay:       retryDelay,
	}
	if config.CacheDirectory != "" {
		reader.fileCache = NewFileCache(config.CacheDirectory)
	}
	return reader
}

func (r *Reader) Close() error {
	return r.httpClient.Close()
}

// IsURL reports whether source names an http or https resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch downloads url, or reads it from the cache, and decodes it like a local file.
func (r *Reader) Fetch(ctx context.Context, url string) (string, error) {
	var contents []byte
	var err error
	if r.fileCache != nil {
		contents, err = r.fileCache.cache(url, func() ([]byte, error) {
			return r.download(ctx, url)
		})
	} else {
		contents, err = r.download(ctx, url)
	}
	if err != nil {
		return "", err
	}

	text, err := dictionary.Decode(bytes.NewReader(contents))
	if err != nil {
		return "", fmt.Errorf("dictionary.Decode > %w", err)
	}
	return text, nil
}

func (r *Reader) download(ctx context.Context, url string) ([]byte, error) {
	var contents []byte
	if err := retry.Do(
		func() error {
			body, err := r.get(ctx, url)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Debug("retrying download", "url", url, "error", err)
				return err
			}
			contents = body
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.maxRetryAttempts+1),
		retry.Delay(r.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}

	if !isText(contents) {
		return nil, fmt.Errorf("%s: %w (%s)", url, ErrNotText, mimetype.Detect(contents).String())
	}
	return contents, nil
}

type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

func (r *Reader) get(ctx context.Context, url string) ([]byte, error) {
	response, err := r.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, &statusError{statusCode: response.StatusCode(), body: response.String()}
	}
	return []byte(response.String()), nil
}

// isRetryableError retries server errors, rate limiting and transport failures.
func isRetryableError(err error) bool {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.statusCode >= http.StatusInternalServerError ||
			statusErr.statusCode == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isText accepts anything mimetype classifies under text/plain, which includes JSON and TOML.
func isText(contents []byte) bool {
	for mtype := mimetype.Detect(contents); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return true
		}
	}
	return false
}
