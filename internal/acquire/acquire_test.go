// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/internal/pdftest"
	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestSanitizeFilename(t *testing.T) {
	long := strings.Repeat("é", 150)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Attention Is All You Need", "Attention Is All You Need"},
		{"newlines and tabs", "Line one\nline\ttwo\r\nthree", "Line one line two three"},
		{"unsafe chars removed", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"whitespace collapsed", "  many    spaces   here ", "many spaces here"},
		{"only unsafe", `<>:"/\|?*`, ""},
		{"empty", "", ""},
		{"truncated by rune", long, strings.Repeat("é", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.in)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), 100)
			assert.Equal(t, got, SanitizeFilename(got), "sanitizing twice should be stable")
		})
	}
}

func TestFallbackName(t *testing.T) {
	a := fallbackName("https://arxiv.org/pdf/1")
	assert.Equal(t, a, fallbackName("https://arxiv.org/pdf/1"))
	assert.NotEqual(t, a, fallbackName("https://arxiv.org/pdf/2"))
	assert.True(t, strings.HasPrefix(a, "paper-"))
	assert.Len(t, a, len("paper-")+16)
}

// copyCompressor copies src to dst unchanged.
type copyCompressor struct{}

func (copyCompressor) Compress(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// failingCompressor writes a partial output and then fails.
type failingCompressor struct{}

func (failingCompressor) Compress(_, dst string) error {
	os.WriteFile(dst, []byte("partial"), 0o644)
	return errors.New("corrupt xref")
}

// pdfServer serves a PDF body for /ok/*, 404 for /missing/*, and a
// truncated body for /truncated/*.
func pdfServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/ok/"):
			w.Header().Set("Content-Type", "application/pdf")
			w.Write(body)
		case strings.HasPrefix(r.URL.Path, "/truncated/"):
			w.Header().Set("Content-Length", fmt.Sprint(len(body)*2))
			w.Write(body)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			panic(http.ErrAbortHandler)
		case strings.HasPrefix(r.URL.Path, "/slow/"):
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestAcquirer(t *testing.T, ts *httptest.Server, comp Compressor) (*Acquirer, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	return &Acquirer{
		Client:     ts.Client(),
		Compressor: comp,
		Config: types.AcquisitionConfig{
			HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "paper-digest/test"},
			DataDir:    dir,
		},
	}, dir
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAcquire_Success(t *testing.T) {
	ts := pdfServer(t, []byte("%PDF-1.4 fake"))
	a, dir := newTestAcquirer(t, ts, copyCompressor{})

	var buf bytes.Buffer
	p, err := a.Acquire(context.Background(), types.Candidate{
		Title:  "Deep\nLearning: A Survey?",
		PDFURL: ts.URL + "/ok/1",
	}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "Deep Learning A Survey", p.Name)
	assert.Equal(t, filepath.Join(dir, "Deep Learning A Survey.pdf"), p.PDFPath)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), p.RawSize)
	assert.Equal(t, p.RawSize, p.CompressedSize)
	assert.Equal(t, []string{"Deep Learning A Survey.pdf"}, dirEntries(t, dir))
	assert.Contains(t, buf.String(), "downloading: Deep\nLearning: A Survey?")
	assert.Contains(t, buf.String(), "saved:")
}

func TestAcquire_RealCompression(t *testing.T) {
	ts := pdfServer(t, pdftest.Build("Hello compression"))
	a, dir := newTestAcquirer(t, ts, PDFCPUCompressor{})

	p, err := a.Acquire(context.Background(), types.Candidate{Title: "Tiny", PDFURL: ts.URL + "/ok/tiny"}, io.Discard)
	require.NoError(t, err)

	data, err := os.ReadFile(p.PDFPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, []string{"Tiny.pdf"}, dirEntries(t, dir))
}

func TestAcquire_HTTPErrorLeavesNothing(t *testing.T) {
	ts := pdfServer(t, []byte("%PDF"))
	a, dir := newTestAcquirer(t, ts, copyCompressor{})

	_, err := a.Acquire(context.Background(), types.Candidate{Title: "Gone", PDFURL: ts.URL + "/missing/1"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Empty(t, dirEntries(t, dir))
}

func TestAcquire_TruncatedDownloadRemovesTemp(t *testing.T) {
	ts := pdfServer(t, []byte("%PDF-1.4 partial body"))
	a, dir := newTestAcquirer(t, ts, copyCompressor{})

	_, err := a.Acquire(context.Background(), types.Candidate{Title: "Cut", PDFURL: ts.URL + "/truncated/1"}, io.Discard)
	require.Error(t, err)
	assert.Empty(t, dirEntries(t, dir))
}

func TestAcquire_TimeoutRemovesTemp(t *testing.T) {
	ts := pdfServer(t, nil)
	a, dir := newTestAcquirer(t, ts, copyCompressor{})
	a.Config.Timeout = 50 * time.Millisecond

	_, err := a.Acquire(context.Background(), types.Candidate{Title: "Slow", PDFURL: ts.URL + "/slow/1"}, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, dirEntries(t, dir))
}

func TestAcquire_CompressionFailureRemovesBoth(t *testing.T) {
	ts := pdfServer(t, []byte("%PDF-1.4 fake"))
	a, dir := newTestAcquirer(t, ts, failingCompressor{})

	_, err := a.Acquire(context.Background(), types.Candidate{Title: "Broken", PDFURL: ts.URL + "/ok/1"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt xref")
	assert.Empty(t, dirEntries(t, dir))
}

func TestAcquire_OverwritesExisting(t *testing.T) {
	ts := pdfServer(t, []byte("%PDF-1.4 new"))
	a, dir := newTestAcquirer(t, ts, copyCompressor{})
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Same.pdf"), []byte("old"), 0o644))

	p, err := a.Acquire(context.Background(), types.Candidate{Title: "Same", PDFURL: ts.URL + "/ok/1"}, io.Discard)
	require.NoError(t, err)

	data, err := os.ReadFile(p.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 new", string(data))
}

func TestAcquire_EmptyTitleUsesFallback(t *testing.T) {
	ts := pdfServer(t, []byte("%PDF-1.4 fake"))
	a, _ := newTestAcquirer(t, ts, copyCompressor{})
	url := ts.URL + "/ok/anon"

	p, err := a.Acquire(context.Background(), types.Candidate{Title: "???", PDFURL: url}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, fallbackName(url), p.Name)
}

func TestAcquire_MissingURL(t *testing.T) {
	a := New(types.AcquisitionConfig{DataDir: t.TempDir()})
	_, err := a.Acquire(context.Background(), types.Candidate{Title: "No link"}, io.Discard)
	assert.Error(t, err)
}

func TestAcquireBatch_ContinuesAfterFailure(t *testing.T) {
	ts := pdfServer(t, []byte("%PDF-1.4 fake"))
	a, dir := newTestAcquirer(t, ts, copyCompressor{})

	var buf bytes.Buffer
	result := a.AcquireBatch(context.Background(), []types.Candidate{
		{Title: "First", PDFURL: ts.URL + "/ok/1"},
		{Title: "Second", PDFURL: ts.URL + "/missing/2"},
		{Title: "Third", PDFURL: ts.URL + "/ok/3"},
	}, &buf)

	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Papers, 2)
	assert.Equal(t, "First", result.Papers[0].Name)
	assert.Equal(t, "Third", result.Papers[1].Name)
	assert.ElementsMatch(t, []string{"First.pdf", "Third.pdf"}, dirEntries(t, dir))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Second", result.Errors[0].Candidate.Title)
	assert.Contains(t, result.Errors[0].Err.Error(), "HTTP 404")

	out := buf.String()
	assert.Contains(t, out, "failed:  Second")
	assert.Contains(t, out, "Batch summary: 2 downloaded, 1 failed (total: 3)")
}

func TestAcquireBatch_Empty(t *testing.T) {
	a := New(types.AcquisitionConfig{DataDir: t.TempDir()})
	var buf bytes.Buffer
	result := a.AcquireBatch(context.Background(), nil, &buf)
	assert.Equal(t, 0, result.Total())
	assert.False(t, result.HasFailures())
	assert.Contains(t, buf.String(), "Batch summary: 0 downloaded, 0 failed (total: 0)")
}
