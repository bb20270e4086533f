// Package netutil wraps net/http and net with single-shot helpers: an HTTP
// downloader and line-oriented TCP client and server connections. Nothing
// here retries; every operation runs once under a fixed timeout.
package netutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "utilkit"
)

// ProgressFunc receives the bytes read so far and the expected total, which
// is -1 when the server did not send a length.
type ProgressFunc func(done, total int64)

// Downloader fetches URLs over HTTP.
type Downloader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limit     int
	logger    *zap.Logger
	progress  ProgressFunc
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout bounds each request including reading its body. Zero disables
// the bound.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) { dl.timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(dl *Downloader) { dl.userAgent = ua }
}

func WithClient(c *http.Client) Option {
	return func(dl *Downloader) {
		if c != nil {
			dl.client = c
		}
	}
}

// WithRateLimit throttles body reads to bytesPerSec. Zero or less means no
// limit.
func WithRateLimit(bytesPerSec int) Option {
	return func(dl *Downloader) { dl.limit = bytesPerSec }
}

func WithLogger(logger *zap.Logger) Option {
	return func(dl *Downloader) {
		if logger != nil {
			dl.logger = logger
		}
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(dl *Downloader) { dl.progress = fn }
}

func NewDownloader(opts ...Option) *Downloader {
	dl := &Downloader{
		client:    http.DefaultClient,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(dl)
	}
	return dl
}

// do sends the request and checks the status. The returned cancel must be
// called once the body is consumed.
func (dl *Downloader) do(ctx context.Context, method, url string) (*http.Response, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if dl.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, dl.timeout)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("netutil: %s %s: %w", method, url, err)
	}
	if dl.userAgent != "" {
		req.Header.Set("User-Agent", dl.userAgent)
	}
	start := time.Now()
	resp, err := dl.client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("netutil: %s %s: %w", method, url, err)
	}
	dl.logger.Debug("http response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return nil, nil, &HTTPError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, cancel, nil
}

// body wraps the response body with the configured rate limit and progress
// reporting.
func (dl *Downloader) body(ctx context.Context, resp *http.Response) io.Reader {
	var r io.Reader = resp.Body
	if dl.limit > 0 {
		r = &rateReader{ctx: ctx, r: r, lim: rate.NewLimiter(rate.Limit(dl.limit), dl.limit)}
	}
	if dl.progress != nil {
		r = &progressReader{r: r, total: resp.ContentLength, fn: dl.progress}
	}
	return r
}

// Fetch returns the body of url.
func (dl *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, cancel, err := dl.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()
	data, err := io.ReadAll(dl.body(ctx, resp))
	if err != nil {
		return nil, fmt.Errorf("netutil: read %s: %w", url, err)
	}
	return data, nil
}

func (dl *Downloader) FetchString(ctx context.Context, url string) (string, error) {
	data, err := dl.Fetch(ctx, url)
	return string(data), err
}

// Head returns the response to a HEAD request. Its body is already closed.
func (dl *Downloader) Head(ctx context.Context, url string) (*http.Response, error) {
	resp, cancel, err := dl.do(ctx, http.MethodHead, url)
	if err != nil {
		return nil, err
	}
	cancel()
	resp.Body.Close()
	return resp, nil
}

// Download streams url into dest and returns the number of bytes written.
// The body goes to a temporary file next to dest that is renamed on success
// and removed on failure, so dest is never left half written.
func (dl *Downloader) Download(ctx context.Context, url, dest string) (n int64, err error) {
	resp, cancel, err := dl.do(ctx, http.MethodGet, url)
	if err != nil {
		return 0, err
	}
	defer cancel()
	defer resp.Body.Close()

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	n, err = io.Copy(tmp, dl.body(ctx, resp))
	if err != nil {
		return n, fmt.Errorf("netutil: download %s: %w", url, err)
	}
	if err = tmp.Close(); err != nil {
		return n, err
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return n, err
	}
	dl.logger.Info("downloaded", zap.String("url", url), zap.String("dest", dest), zap.Int64("bytes", n))
	return n, nil
}

// Job is one download for DownloadAll.
type Job struct {
	URL  string
	Dest string
}

// DownloadAll runs jobs with at most concurrency downloads in flight, or all
// at once when concurrency is zero or less. The first failure cancels the
// remaining downloads and is returned.
func (dl *Downloader) DownloadAll(ctx context.Context, jobs []Job, concurrency int) error {
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, job := range jobs {
		g.Go(func() error {
			_, err := dl.Download(ctx, job.URL, job.Dest)
			return err
		})
	}
	return g.Wait()
}

// rateReader delays reads so the byte rate stays within lim.
type rateReader struct {
	ctx context.Context
	r   io.Reader
	lim *rate.Limiter
}

func (r *rateReader) Read(p []byte) (int, error) {
	if b := r.lim.Burst(); len(p) > b {
		p = p[:b]
	}
	n, err := r.r.Read(p)
	if n > 0 {
		if werr := r.lim.WaitN(r.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

type progressReader struct {
	r     io.Reader
	done  int64
	total int64
	fn    ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.done += int64(n)
		r.fn(r.done, r.total)
	}
	return n, err
}
