package router

import (
	"net/http"

	"github.com/cx-tal-miterani/ticket-admission/internal/handlers"
	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router. ws serves flight
// event streams; nil leaves the route out.
func SetupRouter(h *handlers.Handler, ws http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Sessions
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/directives", h.ExecuteDirectives).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/flights/{flight}/report", h.GetReport).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sessions/{id}/passengers/{name}", h.GetPassenger).Methods(http.MethodGet, http.MethodOptions)

	// Batches
	api.HandleFunc("/batches", h.SubmitBatch).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/batches/{id}", h.GetBatch).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for real-time updates
	if ws != nil {
		api.HandleFunc("/sessions/{id}/flights/{flight}/ws", ws).Methods(http.MethodGet)
	}

	// Known paths hit with another method fall through to these
	for _, path := range []string{
		"/sessions",
		"/sessions/{id}",
		"/sessions/{id}/directives",
		"/sessions/{id}/flights/{flight}/report",
		"/sessions/{id}/passengers/{name}",
		"/sessions/{id}/flights/{flight}/ws",
		"/batches",
		"/batches/{id}",
	} {
		api.HandleFunc(path, methodNotAllowed)
	}

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"method not allowed"}`))
}
