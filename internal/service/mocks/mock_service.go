package mocks

import (
	"context"

	"github.com/cx-tal-miterani/ticket-admission/shared/models"
	"github.com/stretchr/testify/mock"
)

// MockDeskService is a mock implementation of DeskService
type MockDeskService struct {
	mock.Mock
}

func (m *MockDeskService) CreateSession(ctx context.Context) (*models.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockDeskService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockDeskService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockDeskService) Execute(ctx context.Context, sessionID string, directives []string) ([]string, error) {
	args := m.Called(ctx, sessionID, directives)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDeskService) GetReport(ctx context.Context, sessionID, flight string) (*models.Report, error) {
	args := m.Called(ctx, sessionID, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockDeskService) GetPassenger(ctx context.Context, sessionID, name string) (*models.PassengerInfo, error) {
	args := m.Called(ctx, sessionID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PassengerInfo), args.Error(1)
}

func (m *MockDeskService) SubmitBatch(ctx context.Context, req *models.BatchRequest) (*models.Batch, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Batch), args.Error(1)
}

func (m *MockDeskService) GetBatch(ctx context.Context, batchID string) (*models.BatchState, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchState), args.Error(1)
}
