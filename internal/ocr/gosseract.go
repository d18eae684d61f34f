package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine runs Tesseract in-process through the libtesseract
// binding. It avoids the temp-file round trip of the exec engine at the cost
// of a cgo dependency.
type GosseractEngine struct {
	cfg    TesseractConfig
	logger *slog.Logger
}

func NewGosseractEngine(cfg TesseractConfig, logger *slog.Logger) *GosseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Languages == "" {
		cfg.Languages = "eng+hin"
	}
	return &GosseractEngine{cfg: cfg, logger: logger}
}

func (e *GosseractEngine) Recognize(ctx context.Context, img image.Image, hints Hints) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	lang := hints.Languages
	if lang == "" {
		lang = e.cfg.Languages
	}

	text, err := e.recognize(buf.Bytes(), lang, hints)
	if err != nil && lang != fallbackLanguage && strings.Contains(lang, "+") {
		e.logger.Warn("ocr.gosseract.language_fallback", "from", lang, "to", fallbackLanguage, "error", err)
		text, err = e.recognize(buf.Bytes(), fallbackLanguage, hints)
	}
	if err != nil {
		return "", fmt.Errorf("gosseract: %w", err)
	}
	return text, nil
}

func (e *GosseractEngine) recognize(pngBytes []byte, lang string, hints Hints) (string, error) {
	client := gosseract.NewClient()
	defer func() {
		if cerr := client.Close(); cerr != nil {
			e.logger.Warn("ocr.gosseract.close_error", "error", cerr)
		}
	}()

	if err := client.SetLanguage(strings.Split(lang, "+")...); err != nil {
		return "", err
	}
	if dir := pickStr(hints.TessdataDir, e.cfg.TessdataDir); dir != "" {
		if err := client.SetTessdataPrefix(dir); err != nil {
			return "", err
		}
	}
	if psm := pick(hints.PSM, e.cfg.PSM); psm > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
			return "", err
		}
	}
	if err := client.SetImageFromBytes(pngBytes); err != nil {
		return "", err
	}
	return client.Text()
}
