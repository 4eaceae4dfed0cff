// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// LibraryEngine runs OCR in-process through the libtesseract bindings.
// Each call opens and closes its own client.
type LibraryEngine struct {
	Language string
}

// Name returns the engine identifier.
func (e *LibraryEngine) Name() string { return "tesseract-library" }

// Recognize implements Engine.
func (e *LibraryEngine) Recognize(ctx context.Context, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return "", fmt.Errorf("setting OCR language %q: %w", e.Language, err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("loading page image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return text, nil
}
