package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cx-tal-miterani/ticket-admission/internal/admission"
	"github.com/cx-tal-miterani/ticket-admission/internal/service"
	"github.com/cx-tal-miterani/ticket-admission/internal/service/mocks"
	"github.com/cx-tal-miterani/ticket-admission/shared/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/directives", h.ExecuteDirectives).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/flights/{flight}/report", h.GetReport).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/passengers/{name}", h.GetPassenger).Methods(http.MethodGet)
	api.HandleFunc("/batches", h.SubmitBatch).Methods(http.MethodPost)
	api.HandleFunc("/batches/{id}", h.GetBatch).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	return r
}

func TestHandler_CreateSession(t *testing.T) {
	mockService := new(mocks.MockDeskService)
	handler := NewHandler(mockService)
	router := setupTestRouter(handler)

	now := time.Now().UTC().Truncate(time.Second)
	mockService.On("CreateSession", mock.Anything).Return(&models.Session{
		ID:        "s1",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response models.Session
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "s1", response.ID)
	assert.True(t, now.Equal(response.CreatedAt))

	mockService.AssertExpectations(t)
}

func TestHandler_GetSession(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		mockReturn     *models.Session
		mockError      error
		expectedStatus int
	}{
		{
			name:           "session found",
			sessionID:      "s1",
			mockReturn:     &models.Session{ID: "s1", Directives: 3},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "session not found",
			sessionID:      "missing",
			mockError:      service.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockDeskService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			mockService.On("GetSession", mock.Anything, tt.sessionID).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+tt.sessionID, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response models.Session
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, 3, response.Directives)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_DeleteSession(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "deleted",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "session not found",
			mockError:      service.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockDeskService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			mockService.On("DeleteSession", mock.Anything, "s1").Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/api/sessions/s1", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_ExecuteDirectives(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mocks.MockDeskService)
		expectedStatus int
		expectedLines  []string
	}{
		{
			name: "directives executed",
			requestBody: models.ExecuteRequest{
				Directives: []string{"addseat F1 economy 1", "sell F9"},
			},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("Execute", mock.Anything, "s1", []string{"addseat F1 economy 1", "sell F9"}).
					Return([]string{"addseats F1 0 1 0", "error"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLines:  []string{"addseats F1 0 1 0", "error"},
		},
		{
			name:        "blank directives produce no lines",
			requestBody: models.ExecuteRequest{Directives: []string{""}},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("Execute", mock.Anything, "s1", []string{""}).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLines:  []string{},
		},
		{
			name:           "invalid request body",
			requestBody:    "invalid",
			setupMock:      func(m *mocks.MockDeskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no directives",
			requestBody:    models.ExecuteRequest{},
			setupMock:      func(m *mocks.MockDeskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "cancelled request",
			requestBody: models.ExecuteRequest{Directives: []string{"sell F1"}},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("Execute", mock.Anything, "s1", mock.Anything).Return(nil, context.Canceled)
			},
			expectedStatus: http.StatusRequestTimeout,
		},
		{
			name:        "session not found",
			requestBody: models.ExecuteRequest{Directives: []string{"sell F1"}},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("Execute", mock.Anything, "s1", mock.Anything).Return(nil, service.ErrSessionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockDeskService)
			tt.setupMock(mockService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/directives", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedLines != nil {
				var response models.ExecuteResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, tt.expectedLines, response.Lines)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetReport(t *testing.T) {
	tests := []struct {
		name           string
		flight         string
		mockReturn     *models.Report
		mockError      error
		expectedStatus int
	}{
		{
			name:   "report found",
			flight: "F1",
			mockReturn: &models.Report{
				Flight: "F1",
				Classes: []models.ClassReport{
					{Class: models.ClassBusiness, Passengers: []string{"A"}},
					{Class: models.ClassEconomy, Passengers: []string{}},
					{Class: models.ClassStandard, Passengers: []string{"B"}},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "flight not found",
			flight:         "F9",
			mockError:      admission.ErrUnknownFlight,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "session not found",
			flight:         "F1",
			mockError:      service.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockDeskService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			mockService.On("GetReport", mock.Anything, "s1", tt.flight).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/sessions/s1/flights/"+tt.flight+"/report", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.mockReturn != nil {
				var response models.Report
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, *tt.mockReturn, response)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetPassenger(t *testing.T) {
	tests := []struct {
		name           string
		passenger      string
		mockReturn     *models.PassengerInfo
		mockError      error
		expectedStatus int
	}{
		{
			name:      "passenger found",
			passenger: "A",
			mockReturn: &models.PassengerInfo{
				Name:      "A",
				Flight:    "F1",
				Requested: models.ClassEconomy,
				Purchased: models.ClassNone,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "passenger not found",
			passenger:      "Z",
			mockError:      admission.ErrUnknownPassenger,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockDeskService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			mockService.On("GetPassenger", mock.Anything, "s1", tt.passenger).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/sessions/s1/passengers/"+tt.passenger, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.mockReturn != nil {
				var response models.PassengerInfo
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, *tt.mockReturn, response)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_SubmitBatch(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mocks.MockDeskService)
		expectedStatus int
	}{
		{
			name:        "batch started",
			requestBody: models.BatchRequest{InputPath: "in.txt", OutputPath: "out.txt"},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("SubmitBatch", mock.Anything, &models.BatchRequest{InputPath: "in.txt", OutputPath: "out.txt"}).
					Return(&models.Batch{ID: "abc", WorkflowID: "batch-abc", RunID: "run-1"}, nil)
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "missing input",
			requestBody:    models.BatchRequest{OutputPath: "out.txt"},
			setupMock:      func(m *mocks.MockDeskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid request body",
			requestBody:    "invalid",
			setupMock:      func(m *mocks.MockDeskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "file batch without output",
			requestBody: models.BatchRequest{InputPath: "in.txt"},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("SubmitBatch", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidBatch)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "batches disabled",
			requestBody: models.BatchRequest{Directives: []string{"sell F1"}},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("SubmitBatch", mock.Anything, mock.Anything).Return(nil, service.ErrBatchesDisabled)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:        "workflow start failed",
			requestBody: models.BatchRequest{Directives: []string{"sell F1"}},
			setupMock: func(m *mocks.MockDeskService) {
				m.On("SubmitBatch", mock.Anything, mock.Anything).Return(nil, errors.New("failed to start workflow"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockDeskService)
			tt.setupMock(mockService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/batches", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusAccepted {
				var response models.Batch
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, "batch-abc", response.WorkflowID)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetBatch(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     *models.BatchState
		mockError      error
		expectedStatus int
	}{
		{
			name: "batch found",
			mockReturn: &models.BatchState{
				BatchID:   "abc",
				Status:    models.BatchStatusProcessing,
				Processed: 4,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "batch not found",
			mockError:      service.ErrBatchNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockDeskService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			mockService.On("GetBatch", mock.Anything, "abc").Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/batches/abc", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.mockReturn != nil {
				var response models.BatchState
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, models.BatchStatusProcessing, response.Status)
				assert.Equal(t, 4, response.Processed)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_HealthCheck(t *testing.T) {
	handler := NewHandler(new(mocks.MockDeskService))
	router := setupTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "healthy", response["status"])
}
