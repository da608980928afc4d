package main

import (
	"log"
	"os"

	"github.com/cx-tal-miterani/ticket-admission/internal/activities"
	"github.com/cx-tal-miterani/ticket-admission/internal/config"
	"github.com/cx-tal-miterani/ticket-admission/internal/workflows"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
	"github.com/spf13/afero"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

func main() {
	// Get configuration
	v := config.New()
	cfg, err := config.Load(v, v.GetString("config_file"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg, os.Stderr)

	// Connect to Temporal
	logger.Info("Connecting to Temporal", "host", cfg.TemporalHost)
	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("Failed to connect to Temporal", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	// Create worker
	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	// Register workflows
	w.RegisterWorkflowWithOptions(workflows.BatchWorkflow, workflow.RegisterOptions{Name: models.BatchWorkflowName})

	// Create and register activities
	acts := activities.New(afero.NewOsFs(), logger)
	w.RegisterActivityWithOptions(acts.ProcessFile, activity.RegisterOptions{Name: activities.ProcessFileName})
	w.RegisterActivityWithOptions(acts.WriteTranscript, activity.RegisterOptions{Name: activities.WriteTranscriptName})

	// Start worker
	logger.Info("Starting Temporal worker", "taskQueue", cfg.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}
}
