package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cx-tal-miterani/ticket-admission/internal/admission"
	"github.com/cx-tal-miterani/ticket-admission/internal/directive"
	"github.com/cx-tal-miterani/ticket-admission/internal/events"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
	"github.com/google/uuid"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
)

const batchIDPrefix = "batch-"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBatchNotFound   = errors.New("batch not found")
	ErrInvalidBatch    = errors.New("batch needs an input path or directives")
	ErrBatchesDisabled = errors.New("batch processing is not configured")
)

// Publisher receives flight events produced by directives.
type Publisher interface {
	Publish(ev events.Event) error
}

// DeskService defines the ticket desk service interface
type DeskService interface {
	CreateSession(ctx context.Context) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Execute(ctx context.Context, sessionID string, directives []string) ([]string, error)
	GetReport(ctx context.Context, sessionID, flight string) (*models.Report, error)
	GetPassenger(ctx context.Context, sessionID, name string) (*models.PassengerInfo, error)
	SubmitBatch(ctx context.Context, req *models.BatchRequest) (*models.Batch, error)
	GetBatch(ctx context.Context, batchID string) (*models.BatchState, error)
}

// deskSession is one engine session. mu is held for the whole of every
// directive batch, so a sale never interleaves with another request.
type deskSession struct {
	mu         sync.Mutex
	id         string
	dispatcher *directive.Dispatcher
	directives int
	createdAt  time.Time
	updatedAt  time.Time
}

func (s *deskSession) snapshot() *models.Session {
	return &models.Session{
		ID:         s.id,
		Directives: s.directives,
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
}

// deskServiceImpl implements DeskService
type deskServiceImpl struct {
	temporalClient client.Client
	publisher      Publisher
	taskQueue      string
	logger         *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*deskSession
}

// NewDeskService creates a new DeskService. temporalClient may be nil, which
// disables batches; publisher may be nil, which disables events.
func NewDeskService(temporalClient client.Client, publisher Publisher, taskQueue string, logger *slog.Logger) DeskService {
	return &deskServiceImpl{
		temporalClient: temporalClient,
		publisher:      publisher,
		taskQueue:      taskQueue,
		logger:         logger,
		sessions:       make(map[string]*deskSession),
	}
}

func (s *deskServiceImpl) CreateSession(ctx context.Context) (*models.Session, error) {
	now := time.Now()
	id := uuid.New().String()
	sess := &deskSession{
		id: id,
		dispatcher: directive.NewDispatcher(
			admission.NewSession(admission.WithLogger(s.logger.With("session", id))),
			s.logger.With("session", id),
		),
		createdAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("session created", "session", id)
	return sess.snapshot(), nil
}

func (s *deskServiceImpl) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

func (s *deskServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	s.logger.Info("session deleted", "session", sessionID)
	return nil
}

func (s *deskServiceImpl) Execute(ctx context.Context, sessionID string, directives []string) ([]string, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	// an entry may hold several lines; split them the same way files are split
	var lines []string
	for _, d := range directives {
		split, err := directive.ReadLines(strings.NewReader(d))
		if err != nil {
			return nil, err
		}
		lines = append(lines, split...)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// a batch either runs whole or not at all
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output := make([]string, 0, len(lines))
	for _, line := range lines {
		out, ok := sess.dispatcher.Execute(line)
		if !ok {
			continue
		}
		sess.directives++
		output = append(output, out.Lines...)
		s.publish(sessionID, out)
	}
	sess.updatedAt = time.Now()
	return output, nil
}

func (s *deskServiceImpl) GetReport(ctx context.Context, sessionID, flight string) (*models.Report, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.dispatcher.Session().Report(flight)
}

func (s *deskServiceImpl) GetPassenger(ctx context.Context, sessionID, name string) (*models.PassengerInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.dispatcher.Session().Info(name)
}

func (s *deskServiceImpl) SubmitBatch(ctx context.Context, req *models.BatchRequest) (*models.Batch, error) {
	if s.temporalClient == nil {
		return nil, ErrBatchesDisabled
	}
	if err := validateBatch(req); err != nil {
		return nil, err
	}

	batchID := uuid.New().String()[:8]
	input := models.BatchInput{
		BatchID:    batchID,
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		Directives: req.Directives,
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        batchIDPrefix + batchID,
		TaskQueue: s.taskQueue,
	}

	run, err := s.temporalClient.ExecuteWorkflow(ctx, workflowOptions, models.BatchWorkflowName, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start workflow: %w", err)
	}

	s.logger.Info("batch submitted", "batch", batchID, "runId", run.GetRunID())
	return &models.Batch{
		ID:         batchID,
		WorkflowID: workflowOptions.ID,
		RunID:      run.GetRunID(),
	}, nil
}

func (s *deskServiceImpl) GetBatch(ctx context.Context, batchID string) (*models.BatchState, error) {
	if s.temporalClient == nil {
		return nil, ErrBatchesDisabled
	}

	response, err := s.temporalClient.QueryWorkflow(ctx, batchIDPrefix+batchID, "", models.QueryGetState)
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to query workflow: %w", err)
	}

	var state models.BatchState
	if err := response.Get(&state); err != nil {
		return nil, fmt.Errorf("failed to decode batch state: %w", err)
	}
	return &state, nil
}

func validateBatch(req *models.BatchRequest) error {
	if req.InputPath != "" {
		if len(req.Directives) > 0 {
			return fmt.Errorf("%w: give an input path or directives, not both", ErrInvalidBatch)
		}
		if req.OutputPath == "" {
			return fmt.Errorf("%w: a file batch needs an output path", ErrInvalidBatch)
		}
		return nil
	}
	if len(req.Directives) == 0 {
		return ErrInvalidBatch
	}
	size := 0
	for _, d := range req.Directives {
		size += len(d)
	}
	if size > models.MaxInlineBytes {
		return fmt.Errorf("%w: inline directives exceed %d bytes, submit a file instead", ErrInvalidBatch, models.MaxInlineBytes)
	}
	return nil
}

func (s *deskServiceImpl) session(id string) (*deskSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *deskServiceImpl) publish(sessionID string, out directive.Outcome) {
	if s.publisher == nil || out.Err != nil {
		return
	}

	var typ events.Type
	switch out.Directive.Verb {
	case directive.VerbAddSeat:
		typ = events.TypeSeatsAdded
	case directive.VerbEnqueue:
		typ = events.TypePassengerQueued
	case directive.VerbSell:
		typ = events.TypeTicketsSold
	case directive.VerbClose:
		typ = events.TypeFlightClosed
	default:
		return
	}

	ev := events.Event{
		Type:      typ,
		SessionID: sessionID,
		Flight:    out.Flight(),
		Lines:     out.Lines,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.publisher.Publish(ev); err != nil {
		s.logger.Warn("failed to publish event", "type", typ, "flight", ev.Flight, "error", err)
	}
}
