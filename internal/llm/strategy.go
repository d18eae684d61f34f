package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/hqplabs/idcard-ocr/internal/extract"
)

// Strategy is the LLM-assisted heuristic generation: it runs an inner
// strategy (normally the keyword scanners) for the regex-derived baseline,
// then asks the model for a hint and reconciles the two. A model failure of
// any kind degrades to the baseline; the collaborator can never fail the
// request.
type Strategy struct {
	Inner     extract.Strategy
	Extractor Extractor
	Logger    *slog.Logger
}

func NewStrategy(inner extract.Strategy, ex Extractor, logger *slog.Logger) *Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	if inner == nil {
		inner = extract.KeywordStrategy{}
	}
	return &Strategy{Inner: inner, Extractor: ex, Logger: logger}
}

func (s *Strategy) Extract(ctx context.Context, in extract.Input) extract.Fields {
	base := s.Inner.Extract(ctx, in)
	if s.Extractor == nil {
		return base
	}

	start := time.Now()
	resp, err := s.Extractor.Infer(ctx, BuildPrompt(in.FrontText, in.BackText))
	if err != nil {
		s.Logger.Warn("llm.strategy.infer_failed", "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return base
	}
	hint := ParseHint(resp, s.Logger)
	out := Reconcile(hint, base, s.Logger)

	s.Logger.Info("llm.strategy.reconciled",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"hint_id_kept", out.IDNumber != base.IDNumber,
		"hint_name_kept", hint.Name != "" && out.Name == hint.Name,
	)
	return out
}
