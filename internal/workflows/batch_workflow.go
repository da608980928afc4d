package workflows

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cx-tal-miterani/ticket-admission/internal/activities"
	"github.com/cx-tal-miterani/ticket-admission/internal/admission"
	"github.com/cx-tal-miterani/ticket-admission/internal/directive"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// FileTimeout bounds one transcript write attempt
	FileTimeout = 30 * time.Second
	// ProcessTimeout bounds one attempt at streaming a whole directive file
	ProcessTimeout = 10 * time.Minute
	// MaxFileAttempts is the maximum number of attempts per file activity
	MaxFileAttempts = 3
)

var errMissingOutput = errors.New("a file batch needs an output path")

// BatchWorkflow runs a batch through a fresh engine session. A file batch is
// streamed file to file by one activity; inline directives run here and the
// transcript is optionally written out.
func BatchWorkflow(ctx workflow.Context, input models.BatchInput) (*models.BatchResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Batch workflow started", "batchId", input.BatchID)

	state := models.BatchState{
		BatchID: input.BatchID,
		Status:  models.BatchStatusLoading,
	}
	err := workflow.SetQueryHandler(ctx, models.QueryGetState, func() (models.BatchState, error) {
		return state, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register query handler: %w", err)
	}

	fail := func(err error) (*models.BatchResult, error) {
		state.Status = models.BatchStatusFailed
		state.FailureReason = err.Error()
		logger.Error("Batch failed", "batchId", input.BatchID, "error", err)
		return nil, err
	}

	retry := &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    MaxFileAttempts,
	}

	var stats directive.Stats
	if input.InputPath != "" {
		if input.OutputPath == "" {
			return fail(temporal.NewNonRetryableApplicationError(errMissingOutput.Error(), "InvalidBatch", errMissingOutput))
		}

		state.Status = models.BatchStatusProcessing
		processCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
			StartToCloseTimeout: ProcessTimeout,
			RetryPolicy:         retry,
		})
		var out activities.ProcessFileOutput
		err := workflow.ExecuteActivity(processCtx, activities.ProcessFileName, activities.ProcessFileInput{
			InputPath:  input.InputPath,
			OutputPath: input.OutputPath,
		}).Get(ctx, &out)
		if err != nil {
			return fail(fmt.Errorf("failed to process %s: %w", input.InputPath, err))
		}
		stats = directive.Stats{Directives: out.Directives, Errors: out.Errors, Lines: out.Lines}
		state.Processed = stats.Directives
		state.Errors = stats.Errors
	} else {
		var lines []string
		for _, d := range input.Directives {
			split, err := directive.ReadLines(strings.NewReader(d))
			if err != nil {
				return fail(err)
			}
			lines = append(lines, split...)
		}

		// The engine is deterministic, so it runs inline; replays rebuild the
		// same session from the same lines.
		state.Status = models.BatchStatusProcessing
		dispatcher := directive.NewDispatcher(
			admission.NewSession(),
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
		var transcript []string
		transcript, stats = dispatcher.ExecuteAll(lines)

		state.Processed = stats.Directives
		state.Errors = stats.Errors
		state.Lines = transcript
		if len(transcript) > models.MaxStateLines {
			state.Lines = transcript[:models.MaxStateLines]
			state.Truncated = true
		}

		if input.OutputPath != "" {
			state.Status = models.BatchStatusWriting
			writeCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
				StartToCloseTimeout: FileTimeout,
				RetryPolicy:         retry,
			})
			err := workflow.ExecuteActivity(writeCtx, activities.WriteTranscriptName, activities.WriteTranscriptInput{
				Path:  input.OutputPath,
				Lines: transcript,
			}).Get(ctx, nil)
			if err != nil {
				return fail(fmt.Errorf("failed to write transcript: %w", err))
			}
		}
	}

	logger.Info("Batch workflow completed", "batchId", input.BatchID,
		"directives", stats.Directives, "errors", stats.Errors)
	state.Status = models.BatchStatusCompleted

	return &models.BatchResult{
		BatchID:   input.BatchID,
		Processed: stats.Directives,
		Errors:    stats.Errors,
		Lines:     stats.Lines,
	}, nil
}
