// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fitz "github.com/gen2brain/go-fitz"

	"github.com/pdiddy/paper-digest/internal/ocr"
)

// DefaultDPI is the resolution pages are rendered at before OCR.
const DefaultDPI = 200

// OCRStage renders each page to an image and runs OCR on it. Pages are
// processed in order; a failing page stops the stage and the text of the
// pages already read is returned.
type OCRStage struct {
	Engine ocr.Engine
	DPI    float64
}

// Name returns the stage identifier.
func (s *OCRStage) Name() string { return "ocr" }

// Extract implements Stage.
func (s *OCRStage) Extract(ctx context.Context, pdfPath string) (string, error) {
	if s.Engine == nil {
		return "", errors.New("no OCR engine configured")
	}
	dpi := s.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return sb.String(), err
		}
		img, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return partial(sb.String(), fmt.Errorf("rendering page %d: %w", i+1, err))
		}
		text, err := s.Engine.Recognize(ctx, img)
		if err != nil {
			return partial(sb.String(), fmt.Errorf("OCR page %d: %w", i+1, err))
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// partial keeps the pages read before a failure. With some text the failure
// is dropped; with none it is reported.
func partial(text string, err error) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}
	return "", err
}
