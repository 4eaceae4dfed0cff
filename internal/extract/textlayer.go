// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLayerStage reads the embedded text layer of every page in order and
// joins the pages with newlines. A page that cannot be read ends the stage
// with the text of the pages before it.
type TextLayerStage struct{}

// Name returns the stage identifier.
func (TextLayerStage) Name() string { return "text-layer" }

// Extract implements Stage.
func (TextLayerStage) Extract(ctx context.Context, pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := pageText(r, i)
		if err != nil {
			return partial(sb.String(), fmt.Errorf("reading page %d: %w", i, err))
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// pageText returns the plain text of page i. A panic in the content stream
// parser is returned as an error so earlier pages survive it.
func pageText(r *pdf.Reader, i int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	page := r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
