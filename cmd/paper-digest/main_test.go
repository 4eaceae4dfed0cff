package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/internal/pipeline"
	"github.com/pdiddy/paper-digest/internal/search"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// emptySource finds nothing.
type emptySource struct {
	calls int
}

func (s *emptySource) Name() string { return "fake" }

func (s *emptySource) Search(context.Context, string, int) (search.Output, error) {
	s.calls++
	return search.Output{}, nil
}

// stubPipeline makes the run command use a pipeline whose search finds
// nothing, so no network or mail is touched.
func stubPipeline(t *testing.T) *emptySource {
	t.Helper()
	src := &emptySource{}
	orig := newPipeline
	newPipeline = func(context.Context, types.PipelineConfig) (*pipeline.Pipeline, error) {
		return &pipeline.Pipeline{Source: src}, nil
	}
	t.Cleanup(func() { newPipeline = orig })
	return src
}

// resetCLI isolates the command from the caller's working directory, home
// config, environment and earlier runs, and captures its output.
func resetCLI(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RECEIVER_EMAIL", "")
	t.Setenv("MAX_PAPERS", "")

	viper.Reset()
	bindFlags(viper.GetViper())
	require.NoError(t, rootCmd.PersistentFlags().Set("recipient", ""))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		viper.Reset()
		bindFlags(viper.GetViper())
	})
	return &out
}

func TestExecute_Run(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		env        map[string]string
		wantCode   int
		wantSearch int
		wantOutput string
	}{
		{
			name:       "missing recipient",
			args:       []string{"run"},
			wantCode:   1,
			wantSearch: 0,
			wantOutput: "RECEIVER_EMAIL",
		},
		{
			name:       "recipient from environment, nothing found",
			args:       []string{"run"},
			env:        map[string]string{"RECEIVER_EMAIL": "me@example.com"},
			wantCode:   0,
			wantSearch: 1,
			wantOutput: "no new papers to process",
		},
		{
			name:       "recipient from flag, nothing found",
			args:       []string{"run", "--recipient", "me@example.com"},
			wantCode:   0,
			wantSearch: 1,
			wantOutput: "done: 0 paper(s) processed, 0 failed",
		},
		{
			name:       "invalid max papers",
			args:       []string{"run", "--recipient", "me@example.com"},
			env:        map[string]string{"MAX_PAPERS": "0"},
			wantCode:   1,
			wantSearch: 0,
			wantOutput: "MAX_PAPERS",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := resetCLI(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			src := stubPipeline(t)

			code := execute(context.Background(), tt.args)

			assert.Equal(t, tt.wantCode, code, out.String())
			assert.Equal(t, tt.wantSearch, src.calls)
			assert.Contains(t, out.String(), tt.wantOutput)
		})
	}
}
