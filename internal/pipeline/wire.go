package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/extract"
	"github.com/hqplabs/idcard-ocr/internal/imaging"
	"github.com/hqplabs/idcard-ocr/internal/llm"
	"github.com/hqplabs/idcard-ocr/internal/llm/ollama"
	"github.com/hqplabs/idcard-ocr/internal/llm/openai"
	"github.com/hqplabs/idcard-ocr/internal/metrics"
	"github.com/hqplabs/idcard-ocr/internal/ocr"
)

// FromConfig assembles a Processor from application config: image source,
// OCR engine, strategy and the optional LLM collaborator. Shared by the
// daemon and the one-shot CLI.
func FromConfig(cfg *common.Config, store corpus.Corpus, m *metrics.Metrics, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	engine, err := buildEngine(cfg.OCR, logger)
	if err != nil {
		return nil, err
	}
	strategy, err := buildStrategy(cfg, logger)
	if err != nil {
		return nil, err
	}

	pcfg := Config{
		Hints: ocr.Hints{
			Languages:   cfg.OCR.Languages,
			TessdataDir: cfg.OCR.TessdataDir,
			PSM:         cfg.OCR.PSM,
			OEM:         cfg.OCR.OEM,
		},
		RetryRotation:      cfg.OCR.RetryRotation,
		OnMissingEssential: cfg.Extract.OnMissingEssential,
	}
	source := imaging.NewSource(nil, logger)
	return NewProcessor(source, ocr.NewOrienter(engine, logger), strategy, store, m, pcfg, logger), nil
}

func buildEngine(cfg common.OCRConfig, logger *slog.Logger) (ocr.Engine, error) {
	tcfg := ocr.TesseractConfig{
		Tesseract:   cfg.Tesseract,
		Languages:   cfg.Languages,
		TessdataDir: cfg.TessdataDir,
		PSM:         cfg.PSM,
		OEM:         cfg.OEM,
	}
	switch cfg.Engine {
	case "", "tesseract":
		return ocr.NewTesseractEngine(tcfg, logger), nil
	case "gosseract":
		return ocr.NewGosseractEngine(tcfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", cfg.Engine)
	}
}

func buildStrategy(cfg *common.Config, logger *slog.Logger) (extract.Strategy, error) {
	switch cfg.Extract.Strategy {
	case constants.StrategyRegex:
		return extract.RegexStrategy{}, nil
	case "", constants.StrategyKeyword:
		return extract.KeywordStrategy{}, nil
	case constants.StrategyLLM:
		ex, err := buildExtractor(cfg.LLM, logger)
		if err != nil {
			return nil, err
		}
		return llm.NewStrategy(extract.KeywordStrategy{}, ex, logger), nil
	default:
		return nil, fmt.Errorf("unknown extract strategy %q", cfg.Extract.Strategy)
	}
}

func buildExtractor(cfg common.LLMConfig, logger *slog.Logger) (llm.Extractor, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.New(ollama.Config{
			Endpoint: cfg.Endpoint,
			Model:    cfg.Model,
			Timeout:  cfg.Timeout,
		}, logger), nil
	case "openai":
		return openai.New(openai.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
