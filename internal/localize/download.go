package localize

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ChunkSize is the read size used when streaming a resource to disk.
const ChunkSize = 8 * 1024

// Progress describes a download in flight. Total is -1 when the server did
// not report a Content-Length.
type Progress struct {
	URL        string
	Downloaded int64
	Total      int64
}

// Percent returns the completed share in [0, 100], and false when the total
// size is unknown.
func (p Progress) Percent() (float64, bool) {
	if p.Total <= 0 {
		return 0, false
	}
	return float64(p.Downloaded) * 100 / float64(p.Total), true
}

// ProgressFunc receives one event before the first chunk and one after each
// chunk written.
type ProgressFunc func(Progress)

// DownloadRequest selects the resource to fetch and where to put it.
type DownloadRequest struct {
	Format   string
	Language string
	Dir      string
	Now      time.Time
}

// Filename is the local name of a downloaded resource:
// localize-<language>-phrases-<DD-MM-YYYY>##<HHMMSS>.<format>
func Filename(language, format string, now time.Time) string {
	return "localize-" + language + "-phrases-" + now.Format("02-01-2006") + "##" + now.Format("150405") +
		"." + strings.ToLower(format)
}

// Download streams the requested resource into a new file and returns its
// path. Nothing is left on disk when the request fails, the status is not
// 2xx, or the body ends early.
func (c *Client) Download(ctx context.Context, dr DownloadRequest, progress ProgressFunc) (string, error) {
	resourceURL := ResourceURL(c.cfg, dr.Format, dr.Language)

	resp, err := c.do(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Errorf("GET %s: %s", resourceURL, resp.Status)
	}

	now := dr.Now
	if now.IsZero() {
		now = time.Now()
	}
	dir := dr.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename(dr.Language, dr.Format, now))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating destination file")
	}

	if _, err := copyChunks(f, resp.Body, resourceURL, resp.ContentLength, progress); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", errors.Wrap(err, "closing destination file")
	}
	return path, nil
}

func copyChunks(dst io.Writer, src io.Reader, rawURL string, total int64, progress ProgressFunc) (int64, error) {
	if total < 0 {
		total = -1
	}
	p := Progress{URL: rawURL, Total: total}
	if progress != nil {
		progress(p)
	}

	buf := make([]byte, ChunkSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return p.Downloaded, errors.Wrap(err, "writing destination file")
			}
			p.Downloaded += int64(n)
			if progress != nil {
				progress(p)
			}
		}
		if rerr == io.EOF {
			return p.Downloaded, nil
		}
		if rerr != nil {
			return p.Downloaded, errors.Wrap(rerr, "reading response body")
		}
	}
}
