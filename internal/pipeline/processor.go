package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/extract"
	"github.com/hqplabs/idcard-ocr/internal/imaging"
	"github.com/hqplabs/idcard-ocr/internal/metrics"
	"github.com/hqplabs/idcard-ocr/internal/ocr"
)

// Recognizer is the orientation-aware OCR surface the processor drives.
// *ocr.Orienter satisfies it.
type Recognizer interface {
	BestText(ctx context.Context, img image.Image, hints ocr.Hints) (string, int, error)
	RecognizeOnce(ctx context.Context, img image.Image, hints ocr.Hints) (string, error)
}

// Rejection is the structured outcome of a request that completed but was not
// persisted. It is not an error: the pipeline ran to its decision point.
type Rejection struct {
	Reason constants.RejectionReason `json:"reason"`
	// MissingFields names the absent essentials for ESSENTIAL_FIELDS_MISSING.
	MissingFields []string `json:"missing_fields,omitempty"`
	// RawText is the combined OCR text, kept for caller debugging.
	RawText string `json:"raw_text,omitempty"`
	// Prior is the conflicting stored record for ALREADY_EXISTS.
	Prior *extract.ExtractedRecord `json:"prior,omitempty"`
}

// Config holds the processor behavior switches.
type Config struct {
	Hints              ocr.Hints
	RetryRotation      bool
	OnMissingEssential constants.MissingEssentialPolicy
}

// Processor coordinates fetch, OCR, field extraction and the duplicate gate
// for one request. All collaborators are interfaces; the processor owns only
// the ordering.
type Processor struct {
	Source   imaging.Source
	OCR      Recognizer
	Strategy extract.Strategy
	Corpus   corpus.Corpus
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Cfg      Config

	now func() time.Time
}

func NewProcessor(source imaging.Source, rec Recognizer, strategy extract.Strategy, store corpus.Corpus, m *metrics.Metrics, cfg Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OnMissingEssential == "" {
		cfg.OnMissingEssential = constants.PolicyReject
	}
	return &Processor{
		Source:   source,
		OCR:      rec,
		Strategy: strategy,
		Corpus:   store,
		Metrics:  m,
		Logger:   logger,
		Cfg:      cfg,
		now:      time.Now,
	}
}

// Extract runs the full pipeline for one card: fetch both sides, OCR each
// with the orientation retry, run the field strategy, apply the essentials
// policy, then pass the duplicate gate and persist. Exactly one of the record
// and the rejection is non-nil on a nil error.
func (p *Processor) Extract(ctx context.Context, frontRef, backRef, userID string) (*extract.ExtractedRecord, *Rejection, error) {
	reqID := uuid.NewString()
	start := p.now()
	log := p.Logger.With("req_id", reqID, "user_id", userID)
	log.Info("pipeline.extract.start", "front", frontRef, "back", backRef)

	frontText, err := p.recognizeSide(ctx, log, "front", frontRef)
	if err != nil {
		return nil, nil, err
	}
	backText := ""
	if backRef != "" {
		backText, err = p.recognizeSide(ctx, log, "back", backRef)
		if err != nil {
			return nil, nil, err
		}
	}

	in := extract.Input{FrontText: frontText, BackText: backText}
	fields := p.Strategy.Extract(ctx, in)
	rec := Assemble(fields, userID, p.now().UTC())

	if missing := MissingEssentials(rec); len(missing) > 0 &&
		p.Cfg.OnMissingEssential == constants.PolicyReject {
		log.Info("pipeline.extract.rejected",
			"reason", constants.ReasonEssentialFieldsMissing,
			"missing", missing,
			"elapsed_ms", time.Since(start).Milliseconds())
		if p.Metrics != nil {
			p.Metrics.IncrementRejected(string(constants.ReasonEssentialFieldsMissing))
		}
		return nil, &Rejection{
			Reason:        constants.ReasonEssentialFieldsMissing,
			MissingFields: missing,
			RawText:       in.Combined(),
		}, nil
	}

	prior, appended, err := p.Corpus.AppendIfAbsent(ctx, rec)
	if err != nil {
		return nil, nil, fmt.Errorf("persist record: %w", err)
	}
	if !appended {
		log.Info("pipeline.extract.duplicate",
			"id_number", rec.IDNumber,
			"elapsed_ms", time.Since(start).Milliseconds())
		if p.Metrics != nil {
			p.Metrics.IncrementDuplicates()
			p.Metrics.IncrementRejected(string(constants.ReasonAlreadyExists))
		}
		return nil, &Rejection{
			Reason:  constants.ReasonAlreadyExists,
			RawText: in.Combined(),
			Prior:   prior,
		}, nil
	}

	elapsed := time.Since(start)
	log.Info("pipeline.extract.ok",
		"id_number", rec.IDNumber,
		"mirror_available", p.Corpus.MirrorAvailable(),
		"elapsed_ms", elapsed.Milliseconds())
	if p.Metrics != nil {
		p.Metrics.IncrementAccepted()
		p.Metrics.ObserveExtractLatency(elapsed.Seconds())
	}
	return &rec, nil, nil
}

func (p *Processor) recognizeSide(ctx context.Context, log *slog.Logger, side, ref string) (string, error) {
	img, err := p.Source.Fetch(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("fetch %s image: %w", side, err)
	}
	img = imaging.Grayscale(imaging.Downscale(img))

	if !p.Cfg.RetryRotation {
		text, err := p.OCR.RecognizeOnce(ctx, img, p.Cfg.Hints)
		if err != nil {
			return "", fmt.Errorf("ocr %s image: %w", side, err)
		}
		return text, nil
	}

	text, angle, err := p.OCR.BestText(ctx, img, p.Cfg.Hints)
	if err != nil {
		return "", fmt.Errorf("ocr %s image: %w", side, err)
	}
	log.Debug("pipeline.ocr.side", "side", side, "angle", angle, "text_bytes", len(text))
	if p.Metrics != nil {
		p.Metrics.IncrementOrientation(strconv.Itoa(angle))
	}
	return text, nil
}
