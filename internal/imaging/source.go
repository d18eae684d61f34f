package imaging

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/common"
)

// Source fetches and decodes a card photo. A ref is either an http(s) URL or
// a local file path; any network, IO or decode failure surfaces as
// ErrUnreachableSource and terminates the request. Retry policy, if any,
// belongs here, not in the extraction engine.
type Source interface {
	Fetch(ctx context.Context, ref string) (image.Image, error)
}

type httpSource struct {
	client *http.Client
	logger *slog.Logger
}

// NewSource returns the default Source. client may be nil.
func NewSource(client *http.Client, logger *slog.Logger) Source {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &httpSource{client: client, logger: logger}
}

func (s *httpSource) Fetch(ctx context.Context, ref string) (image.Image, error) {
	start := time.Now()
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		img, err := s.fetchURL(ctx, ref)
		s.logger.Debug("imaging.fetch", "ref", ref, "ok", err == nil,
			"elapsed_ms", time.Since(start).Milliseconds())
		return img, err
	}
	return s.loadFile(ref)
}

func (s *httpSource) fetchURL(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", common.ErrUnreachableSource, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreachableSource, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("imaging.body_close_error", "url", url, "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", common.ErrUnreachableSource, resp.StatusCode, url)
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: non-image payload: %v", common.ErrUnreachableSource, err)
	}
	s.logger.Debug("imaging.decoded", "url", url, "format", format)
	return img, nil
}

func (s *httpSource) loadFile(path string) (image.Image, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedImageExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: unsupported extension %q", common.ErrUnreachableSource, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreachableSource, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("imaging.file_close_error", "path", path, "error", cerr)
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", common.ErrUnreachableSource, path, err)
	}
	return img, nil
}
