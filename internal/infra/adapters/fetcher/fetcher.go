// fetcher is the HTTP adapter implementing ports.ForFetching. Feeds
// are fetched with Go's default client identification while media and
// cover art downloads identify as a browser, as some podcast hosts
// reject non-browser clients.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/sa6mwa/podarchiver/internal/app/humanreadable"
	"github.com/sa6mwa/podarchiver/internal/app/model"
	"github.com/sa6mwa/podarchiver/internal/app/ports"
	"github.com/sa6mwa/podarchiver/internal/infra/adapters/logger"
)

const maxRedirects = 10

type forFetching struct {
	// client bounds the whole request, feeds are small.
	client *http.Client
	// downloadClient only bounds connecting and waiting for response
	// headers, a slow but progressing body is never cut off.
	downloadClient *http.Client
	userAgent      string
}

// New returns a fetcher using userAgent for file downloads. Empty
// userAgent and non-positive timeout fall back to the model defaults.
func New(userAgent string, timeout time.Duration) ports.ForFetching {
	if userAgent == "" {
		userAgent = model.DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}
	return &forFetching{
		client: &http.Client{
			Timeout:       timeout,
			CheckRedirect: checkRedirect,
		},
		downloadClient: &http.Client{
			Transport:     transport(timeout),
			CheckRedirect: checkRedirect,
		},
		userAgent: userAgent,
	}
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}

func transport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	t.TLSHandshakeTimeout = timeout
	t.ResponseHeaderTimeout = timeout
	return t
}

func (f *forFetching) Fetch(ctx context.Context, url string) ([]byte, error) {
	l := logger.FromContext(ctx)
	resp, err := f.get(ctx, f.client, url, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", url, err)
	}
	l.Debug("Fetched", "url", url, "bytes", len(body))
	return body, nil
}

func (f *forFetching) DownloadFile(ctx context.Context, url, destPath string) (int64, error) {
	l := logger.FromContext(ctx)
	resp, err := f.get(ctx, f.downloadClient, url, true)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(file, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("unable to download %s to %s: %w", url, destPath, err)
	}
	l.Debug("Downloaded", "url", url, "file", destPath, "bytes", n, "humanSize", humanreadable.IEC(n))
	return n, nil
}

func (f *forFetching) get(ctx context.Context, client *http.Client, url string, asBrowser bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if asBrowser {
		req.Header.Set("User-Agent", f.userAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %s", url, resp.Status)
	}
	return resp, nil
}
