package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// TesseractConfig configures the exec-based engine.
type TesseractConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Languages   string // default "eng+hin"
	TessdataDir string
	PSM         int // 6 is good for the uniform text block on a card
	OEM         int // 1 = LSTM; leave 0 to use default
}

// TesseractEngine shells out to the tesseract binary. The image is written to
// a temporary PNG because tesseract only reads files.
type TesseractEngine struct {
	cfg    TesseractConfig
	runner Runner
	logger *slog.Logger
}

func NewTesseractEngine(cfg TesseractConfig, logger *slog.Logger) *TesseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Languages == "" {
		cfg.Languages = "eng+hin"
	}
	return &TesseractEngine{cfg: cfg, runner: execRunner{}, logger: logger}
}

func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, hints Hints) (string, error) {
	lang := hints.Languages
	if lang == "" {
		lang = e.cfg.Languages
	}

	path, cleanup, err := writeTempPNG(img)
	if err != nil {
		return "", fmt.Errorf("write temp image: %w", err)
	}
	defer cleanup()

	out, err := e.run(ctx, path, lang, hints)
	if err != nil && lang != fallbackLanguage && strings.Contains(lang, "+") {
		// Combined language pack missing on this install; retry with the
		// minimal script set instead of failing the call.
		e.logger.Warn("ocr.tesseract.language_fallback", "from", lang, "to", fallbackLanguage, "error", err)
		out, err = e.run(ctx, path, fallbackLanguage, hints)
	}
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return out, nil
}

func (e *TesseractEngine) run(ctx context.Context, path, lang string, hints Hints) (string, error) {
	args := []string{path, "stdout", "-l", lang}
	if psm := pick(hints.PSM, e.cfg.PSM); psm > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", psm))
	}
	if oem := pick(hints.OEM, e.cfg.OEM); oem > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", oem))
	}
	if dir := pickStr(hints.TessdataDir, e.cfg.TessdataDir); dir != "" {
		args = append(args, "--tessdata-dir", dir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, truncate(string(errb), 512))
	}
	return string(out), nil
}

func writeTempPNG(img image.Image) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "idcard-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	path := filepath.Join(tmpDir, "page.png")
	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

func pick(hint, cfg int) int {
	if hint > 0 {
		return hint
	}
	return cfg
}

func pickStr(hint, cfg string) string {
	if hint != "" {
		return hint
	}
	return cfg
}
