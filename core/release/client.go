package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"beammp-manager/core/errs"
	"beammp-manager/core/utils"

	"golang.org/x/sync/singleflight"
)

// maxIndexBytes caps how much of the index response is read.
const maxIndexBytes = 4 << 20

// Release is the latest release as reported by the index.
type Release struct {
	Tag         string `json:"tag"`
	DownloadURL string `json:"download_url"`
}

type indexPayload struct {
	TagName *string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Client resolves and downloads releases.
type Client struct {
	cfg             Config
	http            *http.Client
	timeout         time.Duration
	downloadTimeout time.Duration
	sf              singleflight.Group
}

// NewClient creates a release client with bounded timeouts.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	downloadTimeout := cfg.DownloadTimeoutSeconds
	if downloadTimeout <= 0 {
		downloadTimeout = 600
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		cfg:             cfg,
		http:            &http.Client{Transport: transport},
		timeout:         timeoutDuration,
		downloadTimeout: time.Duration(downloadTimeout) * time.Second,
	}
}

// ResolveLatest queries the release index for the latest tag. Concurrent
// callers share a single in-flight request, which is bounded by the client
// timeout rather than by any one caller's context. Each caller stops
// waiting when its own ctx ends.
func (c *Client) ResolveLatest(ctx context.Context) (Release, error) {
	ch := c.sf.DoChan("latest", func() (any, error) {
		return c.fetchLatest(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return Release{}, res.Err
		}
		return res.Val.(Release), nil
	case <-ctx.Done():
		return Release{}, errs.New(errs.KindNetwork, "resolve latest release", ctx.Err())
	}
}

func (c *Client) fetchLatest(ctx context.Context) (Release, error) {
	const op = "resolve latest release"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.IndexURL, nil)
	if err != nil {
		return Release{}, errs.New(errs.KindNetwork, op, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Release{}, errs.New(errs.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Release{}, errs.Newf(errs.KindNetwork, op, "unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexBytes))
	if err != nil {
		return Release{}, errs.New(errs.KindNetwork, op, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return Release{}, errs.Newf(errs.KindParse, op, "empty response body")
	}

	var payload indexPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Release{}, errs.New(errs.KindParse, op, err)
	}
	if payload.TagName == nil || strings.TrimSpace(*payload.TagName) == "" {
		return Release{}, errs.Newf(errs.KindParse, op, "tag_name missing from response")
	}

	rel := Release{
		Tag:         strings.TrimSpace(*payload.TagName),
		DownloadURL: c.cfg.DownloadURL,
	}
	for _, asset := range payload.Assets {
		if asset.Name == c.cfg.AssetName && asset.BrowserDownloadURL != "" {
			rel.DownloadURL = asset.BrowserDownloadURL
			break
		}
	}
	return rel, nil
}

// Download streams url into dest. dest is only replaced once the whole body
// has been received; on any failure the previous file (if any) is kept.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	const op = "download artifact"

	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.New(errs.KindNetwork, op, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.New(errs.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.Newf(errs.KindNetwork, op, "unexpected status %s", resp.Status)
	}

	err = utils.WriteAtomic(dest, 0o755, func(w io.Writer) error {
		return copyArtifact(w, resp.Body, resp.ContentLength)
	})
	if err != nil {
		if errs.KindOf(err) != "" {
			return err
		}
		return errs.New(errs.KindIO, op, fmt.Errorf("writing %s: %w", dest, err))
	}
	return nil
}

// copyArtifact copies body into w. Failures writing w are io errors;
// failures reading body and short bodies are network errors.
func copyArtifact(w io.Writer, body io.Reader, contentLength int64) error {
	const op = "download artifact"

	rw := &recordingWriter{w: w}
	n, err := io.Copy(rw, body)
	if err != nil {
		if rw.err != nil {
			return errs.New(errs.KindIO, op, err)
		}
		return errs.New(errs.KindNetwork, op, err)
	}
	if contentLength >= 0 && n != contentLength {
		return errs.Newf(errs.KindNetwork, op, "truncated body: got %d of %d bytes", n, contentLength)
	}
	return nil
}

// recordingWriter remembers the first error returned by the wrapped writer.
type recordingWriter struct {
	w   io.Writer
	err error
}

func (rw *recordingWriter) Write(p []byte) (int, error) {
	n, err := rw.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil && rw.err == nil {
		rw.err = err
	}
	return n, err
}
