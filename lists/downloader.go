package lists

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"

	"github.com/0xERR0R/sigwatch/config"
	"github.com/0xERR0R/sigwatch/evt"
	"github.com/0xERR0R/sigwatch/log"
)

const userAgent = "sigwatch"

func logger() *logrus.Entry {
	return log.PrefixedLog("zone_list")
}

// FileDownloader is able to download a zone list
type FileDownloader interface {
	DownloadFile(ctx context.Context, link string) (io.ReadCloser, error)
}

// StatusError is returned if the server answers with another status than 200 OK
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("got status code %d", e.Code)
}

// Temporary returns true if a later attempt may succeed
func (e *StatusError) Temporary() bool {
	return e.Code >= http.StatusInternalServerError || e.Code == http.StatusTooManyRequests
}

// HTTPDownloader downloads zone lists via HTTP(S)
type HTTPDownloader struct {
	cfg    config.Downloads
	client *http.Client
}

// NewDownloader creates a downloader, transport may be nil to use the default one
func NewDownloader(cfg config.Downloads, transport http.RoundTripper) *HTTPDownloader {
	return &HTTPDownloader{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout.ToDuration(),
			Transport: transport,
		},
	}
}

// DownloadFile returns the body of link. Network errors, 5xx and 429 responses are retried.
// If all attempts failed, a ZoneListDownloadFailed event is published.
func (d *HTTPDownloader) DownloadFile(ctx context.Context, link string) (io.ReadCloser, error) {
	logger := logger().WithField("link", link)

	logger.Info("starting download")

	var body io.ReadCloser

	err := retry.Do(
		func() error {
			var err error

			body, err = d.get(ctx, link)

			return err
		},
		retry.Context(ctx),
		retry.Attempts(max(d.cfg.Attempts, 1)),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(d.cfg.Cooldown.ToDuration()),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTemporary),
		retry.OnRetry(func(n uint, err error) {
			if isTemporary(err) && n+1 < d.cfg.Attempts {
				logger.WithField("attempt", fmt.Sprintf("%d/%d", n+1, d.cfg.Attempts)).
					Warn("download failed, retrying: ", err)
			}
		}),
	)
	if err != nil {
		logger.Error("can't download zone list: ", err)

		evt.Bus().Publish(evt.ZoneListDownloadFailed, link)

		return nil, err
	}

	return body, nil
}

func (d *HTTPDownloader) get(ctx context.Context, link string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()

		return nil, &StatusError{Code: resp.StatusCode}
	}

	return resp.Body, nil
}

func isTemporary(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}

	// timeouts, refused connections and name resolution errors, not e.g. unsupported schemes
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
