// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr recognises text in rendered page images. Two engines are
// available: LibraryEngine links libtesseract through gosseract, and
// CLIEngine pipes images through the tesseract binary.
package ocr

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// DefaultLanguage is the tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Engine recognises the text in a single PNG-encoded page image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, png []byte) (string, error)
}

// New returns the engine selected by cfg.OCREngine. An empty kind selects
// the library engine.
func New(cfg types.ExtractionConfig) (Engine, error) {
	lang := cfg.OCRLanguage
	if lang == "" {
		lang = DefaultLanguage
	}
	switch cfg.OCREngine {
	case "", types.OCRLibrary:
		return &LibraryEngine{Language: lang}, nil
	case types.OCRCLI:
		return NewCLIEngine(lang), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q (want %q or %q)", cfg.OCREngine, types.OCRLibrary, types.OCRCLI)
	}
}
