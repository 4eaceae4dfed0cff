// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

const binTesseract = "tesseract"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec = &osExecutor{}

// CLIEngine pipes page images through the tesseract binary:
// tesseract stdin stdout -l <lang>.
type CLIEngine struct {
	Language string
	exec     executor
}

// NewCLIEngine returns a CLIEngine that runs the tesseract found on PATH.
func NewCLIEngine(lang string) *CLIEngine {
	return &CLIEngine{Language: lang, exec: defaultExec}
}

// Name returns the engine identifier.
func (e *CLIEngine) Name() string { return "tesseract-cli" }

// Available reports whether the tesseract binary exists on PATH and
// responds to --version.
func (e *CLIEngine) Available(ctx context.Context) bool {
	if _, err := e.exec.LookPath(binTesseract); err != nil {
		return false
	}
	return e.exec.RunSilent(ctx, binTesseract, "--version") == nil
}

// Recognize implements Engine.
func (e *CLIEngine) Recognize(ctx context.Context, png []byte) (string, error) {
	args := []string{"stdin", "stdout", "-l", e.Language}

	var out bytes.Buffer
	if err := e.exec.RunPiped(ctx, binTesseract, args, bytes.NewReader(png), &out); err != nil {
		return "", fmt.Errorf("running %s: %w", binTesseract, err)
	}
	return out.String(), nil
}
