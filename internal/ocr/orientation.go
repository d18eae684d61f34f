package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/extract"
	"github.com/hqplabs/idcard-ocr/internal/imaging"
)

// RotationAngles is the fixed orientation hypothesis set, in trial order.
var RotationAngles = []int{0, 90, 180, 270}

// Orienter drives the engine across the rotation hypotheses and keeps the
// text with the most id-number-shaped matches. The score is a black-box
// quality proxy: a correctly oriented card yields more recognizable
// fixed-format digit groups than a misoriented one.
//
// Cost note for latency-sensitive callers: one BestText call performs exactly
// len(Angles) engine invocations (4 by default).
type Orienter struct {
	Engine Engine
	Angles []int
	Logger *slog.Logger
}

func NewOrienter(engine Engine, logger *slog.Logger) *Orienter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orienter{Engine: engine, Angles: RotationAngles, Logger: logger}
}

// BestText returns the recognized text of the best-scoring rotation. Ties
// keep the earlier angle, so angle 0 is the default when no rotation strictly
// improves the score. ErrOCRUnavailable is returned only when the engine
// failed for every angle.
func (o *Orienter) BestText(ctx context.Context, img image.Image, hints Hints) (string, int, error) {
	bestScore := -1
	bestAngle := 0
	bestText := ""
	var lastErr error
	failures := 0

	for _, angle := range o.Angles {
		text, err := o.Engine.Recognize(ctx, imaging.Rotate(img, angle), hints)
		if err != nil {
			o.Logger.Warn("ocr.orientation.engine_error", "angle", angle, "error", err)
			failures++
			lastErr = err
			continue
		}
		score := extract.CountIDMatches(text)
		o.Logger.Debug("ocr.orientation.scored", "angle", angle, "score", score, "text_bytes", len(text))
		if score > bestScore {
			bestScore = score
			bestAngle = angle
			bestText = text
		}
	}

	if failures == len(o.Angles) {
		return "", 0, fmt.Errorf("%w: all orientations failed: %v", common.ErrOCRUnavailable, lastErr)
	}

	o.Logger.Info("ocr.orientation.selected", "angle", bestAngle, "score", bestScore)
	return bestText, bestAngle, nil
}

// RecognizeOnce is the non-retry path: a single engine call at angle 0.
func (o *Orienter) RecognizeOnce(ctx context.Context, img image.Image, hints Hints) (string, error) {
	text, err := o.Engine.Recognize(ctx, img, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrOCRUnavailable, err)
	}
	return text, nil
}
