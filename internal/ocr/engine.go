package ocr

import (
	"context"
	"image"
)

// Hints carries per-call recognition options. Languages uses Tesseract's
// "+"-joined pack syntax ("eng+hin"); engines fall back to "eng" when the
// combined pack is not installed rather than failing the call.
type Hints struct {
	Languages   string
	TessdataDir string
	PSM         int
	OEM         int
}

// Engine maps an image to raw recognized text. An empty string is a valid
// result; errors mean the engine itself could not run.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, hints Hints) (string, error)
}

// fallbackLanguage is the minimal script set every Tesseract install carries.
const fallbackLanguage = "eng"
