// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads candidate PDFs into the data directory and
// recompresses them. Each download lands in a temporary file next to its
// final path; the temporary file is removed on every exit path.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// DefaultDataDir is used when AcquisitionConfig.DataDir is empty.
const DefaultDataDir = "data"

// CandidateError records why one candidate could not be acquired.
type CandidateError struct {
	Candidate types.Candidate
	Err       error
}

// BatchResult holds the outcome of a batch acquisition run.
type BatchResult struct {
	Downloaded int
	Failed     int
	Papers     []*types.Paper
	Errors     []CandidateError
}

// Total returns the total number of candidates processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Failed
}

// HasFailures reports whether any candidate failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Acquirer downloads and compresses candidate PDFs.
type Acquirer struct {
	Client     *http.Client
	Compressor Compressor
	Config     types.AcquisitionConfig
}

// New returns an Acquirer using the pdfcpu compressor.
func New(cfg types.AcquisitionConfig) *Acquirer {
	return &Acquirer{
		Client:     &http.Client{},
		Compressor: PDFCPUCompressor{},
		Config:     cfg,
	}
}

func (a *Acquirer) dataDir() string {
	if a.Config.DataDir == "" {
		return DefaultDataDir
	}
	return a.Config.DataDir
}

// Paths returns the temporary and final PDF paths for a name.
func (a *Acquirer) Paths(name string) (tmpPath, finalPath string) {
	dir := a.dataDir()
	return filepath.Join(dir, name+"_temp.pdf"), filepath.Join(dir, name+".pdf")
}

// Acquire downloads c.PDFURL, recompresses it to <data-dir>/<name>.pdf and
// returns the resulting Paper. An existing file at the final path is
// overwritten.
func (a *Acquirer) Acquire(ctx context.Context, c types.Candidate, w io.Writer) (*types.Paper, error) {
	if c.PDFURL == "" {
		return nil, fmt.Errorf("candidate %q has no PDF URL", c.Title)
	}

	name := SanitizeFilename(c.Title)
	if name == "" {
		name = fallbackName(c.PDFURL)
	}

	if err := os.MkdirAll(a.dataDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", a.dataDir(), err)
	}
	tmpPath, finalPath := a.Paths(name)
	defer os.Remove(tmpPath)

	fmt.Fprintf(w, "downloading: %s\n", c.Title)

	rawSize, err := a.download(ctx, c.PDFURL, tmpPath)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", name, err)
	}

	if err := a.compressor().Compress(tmpPath, finalPath); err != nil {
		os.Remove(finalPath)
		return nil, fmt.Errorf("compressing %s: %w", name, err)
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("compressing %s: %w", name, err)
	}

	fmt.Fprintf(w, "saved:       %s (%s -> %s)\n", finalPath,
		humanize.Bytes(uint64(rawSize)), humanize.Bytes(uint64(info.Size())))

	return &types.Paper{
		Title:          c.Title,
		Name:           name,
		PDFPath:        finalPath,
		SourceURL:      c.PDFURL,
		RawSize:        rawSize,
		CompressedSize: info.Size(),
	}, nil
}

// AcquireBatch acquires each candidate in order, printing per-item status
// and a summary line. It continues after individual failures.
func (a *Acquirer) AcquireBatch(ctx context.Context, candidates []types.Candidate, w io.Writer) BatchResult {
	var result BatchResult
	for _, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		paper, err := a.Acquire(ctx, c, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", c.Title, err)
			result.Failed++
			result.Errors = append(result.Errors, CandidateError{Candidate: c, Err: err})
			continue
		}
		result.Downloaded++
		result.Papers = append(result.Papers, paper)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d failed (total: %d)\n",
		result.Downloaded, result.Failed, result.Total())
	return result
}

func (a *Acquirer) compressor() Compressor {
	if a.Compressor == nil {
		return PDFCPUCompressor{}
	}
	return a.Compressor
}

// download fetches url into destPath within the configured timeout and
// returns the number of bytes written. A partial file is left for the
// caller's deferred cleanup.
func (a *Acquirer) download(ctx context.Context, url, destPath string) (int64, error) {
	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}

	resp, err := httputil.Get(ctx, a.Client, url, a.Config.UserAgent, "application/pdf")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}

	n, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		return n, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		return n, fmt.Errorf("closing temp file: %w", closeErr)
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		return n, fmt.Errorf("writing download: %w", io.ErrUnexpectedEOF)
	}
	if n == 0 {
		return 0, errors.New("empty response body")
	}
	return n, nil
}
