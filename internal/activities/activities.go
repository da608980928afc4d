package activities

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cx-tal-miterani/ticket-admission/internal/admission"
	"github.com/cx-tal-miterani/ticket-admission/internal/directive"
	"github.com/spf13/afero"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

const (
	ProcessFileName     = "ProcessFile"
	WriteTranscriptName = "WriteTranscript"

	// ErrTypeInputNotFound marks a missing directive file. It is not retried.
	ErrTypeInputNotFound = "InputNotFound"
)

// ProcessFileInput is the input for ProcessFile
type ProcessFileInput struct {
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
}

// ProcessFileOutput is the output of ProcessFile
type ProcessFileOutput struct {
	Directives int `json:"directives"`
	Errors     int `json:"errors"`
	Lines      int `json:"lines"`
}

// WriteTranscriptInput is the input for WriteTranscript
type WriteTranscriptInput struct {
	Path  string   `json:"path"`
	Lines []string `json:"lines"`
}

// WriteTranscriptOutput is the output of WriteTranscript
type WriteTranscriptOutput struct {
	Bytes int `json:"bytes"`
}

// Activities does the file side of a batch. File batches stream through a
// fresh engine session here, so neither file ever travels in a payload.
type Activities struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New creates the activities over fs. Engine diagnostics go to logger, which
// may be nil.
func New(fs afero.Fs, logger *slog.Logger) *Activities {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Activities{fs: fs, logger: logger}
}

// ProcessFile activity - runs every directive of the input file and writes
// the transcript. A retry starts over with a fresh session and a truncated
// output, so attempts never see each other's state.
func (a *Activities) ProcessFile(ctx context.Context, input ProcessFileInput) (*ProcessFileOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing directive file", "input", input.InputPath, "output", input.OutputPath)

	in, err := a.fs.Open(input.InputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, temporal.NewNonRetryableApplicationError(
				fmt.Sprintf("input file %s does not exist", input.InputPath), ErrTypeInputNotFound, err)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	out, err := a.create(input.OutputPath)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	dispatcher := directive.NewDispatcher(admission.NewSession(admission.WithLogger(a.logger)), a.logger)
	stats, err := dispatcher.Run(ctx, in, out)
	if err != nil {
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output: %w", err)
	}

	logger.Info("Directive file processed", "input", input.InputPath,
		"directives", stats.Directives, "errors", stats.Errors)
	return &ProcessFileOutput{
		Directives: stats.Directives,
		Errors:     stats.Errors,
		Lines:      stats.Lines,
	}, nil
}

// WriteTranscript activity - writes output lines, CRLF terminated,
// replacing any existing file
func (a *Activities) WriteTranscript(ctx context.Context, input WriteTranscriptInput) (*WriteTranscriptOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Writing transcript", "path", input.Path, "lines", len(input.Lines))

	f, err := a.create(input.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := directive.WriteLines(w, input.Lines); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write transcript: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output: %w", err)
	}

	size := 0
	for _, line := range input.Lines {
		size += len(line) + len(directive.LineEnding)
	}
	return &WriteTranscriptOutput{Bytes: size}, nil
}

// create truncates or creates path, making parent directories as needed.
func (a *Activities) create(path string) (afero.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := a.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := a.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, nil
}
