// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Compressor rewrites the PDF at src into a smaller PDF at dst.
type Compressor interface {
	Compress(src, dst string) error
}

// PDFCPUCompressor optimises PDFs with pdfcpu: streams are re-deflated and
// duplicate or unreferenced objects are dropped.
type PDFCPUCompressor struct{}

// Compress implements Compressor.
func (PDFCPUCompressor) Compress(src, dst string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.OptimizeFile(src, dst, conf); err != nil {
		return fmt.Errorf("optimizing PDF: %w", err)
	}
	return nil
}
