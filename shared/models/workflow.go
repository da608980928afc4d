package models

import "time"

// AddSeatsResult is the seat total of a flight after an addseat.
type AddSeatsResult struct {
	Flight string     `json:"flight"`
	Seats  SeatCounts `json:"seats"`
}

// EnqueueResult describes a passenger newly placed on a waiting list.
type EnqueueResult struct {
	Flight    string    `json:"flight"`
	Passenger string    `json:"passenger"`
	Class     SeatClass `json:"class"`
	// InClass counts waiting passengers on the flight with the same requested
	// class, the new passenger included.
	InClass int `json:"inClass"`
}

// SellResult summarises one sale event.
type SellResult struct {
	Flight string `json:"flight"`
	// Sold is cumulative over every sale on the flight.
	Sold SeatCounts `json:"sold"`
	// Newly counts only seats sold by this event.
	Newly    SeatCounts `json:"newly"`
	Requeued int        `json:"requeued"`
}

// CloseResult is the state of a flight at the moment it closed.
type CloseResult struct {
	Flight   string   `json:"flight"`
	Sold     int      `json:"sold"`
	Waiting  int      `json:"waiting"`
	Stranded []string `json:"stranded"`
}

// ClassReport lists the passengers seated in one class, in sale order.
type ClassReport struct {
	Class      SeatClass `json:"class"`
	Passengers []string  `json:"passengers"`
}

// Report is a read-only dump of a flight's sales, business first.
type Report struct {
	Flight  string        `json:"flight"`
	Closed  bool          `json:"closed"`
	Classes []ClassReport `json:"classes"`
}

// PassengerInfo answers an info directive.
type PassengerInfo struct {
	Name      string    `json:"name"`
	Flight    string    `json:"flight"`
	Requested SeatClass `json:"requested"`
	Purchased SeatClass `json:"purchased"`
}

// Session is an independent engine context hosted by the API server.
type Session struct {
	ID         string    `json:"id"`
	Directives int       `json:"directives"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ExecuteRequest carries directive lines for a session.
type ExecuteRequest struct {
	Directives []string `json:"directives"`
}

// ExecuteResponse carries the output lines, without line terminators.
type ExecuteResponse struct {
	Lines []string `json:"lines"`
}

// BatchRequest asks the worker to process a directive file into OutputPath,
// or inline directives when InputPath is empty. OutputPath is optional only
// for inline directives.
type BatchRequest struct {
	InputPath  string   `json:"inputPath,omitempty"`
	OutputPath string   `json:"outputPath,omitempty"`
	Directives []string `json:"directives,omitempty"`
}

// Batch identifies a started batch workflow.
type Batch struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflowId"`
	RunID      string `json:"runId"`
}

// BatchInput is the input of the batch workflow.
type BatchInput struct {
	BatchID    string   `json:"batchId"`
	InputPath  string   `json:"inputPath,omitempty"`
	OutputPath string   `json:"outputPath,omitempty"`
	Directives []string `json:"directives,omitempty"`
}

// BatchStatus is the lifecycle state of a batch.
type BatchStatus string

const (
	BatchStatusLoading    BatchStatus = "loading"
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusWriting    BatchStatus = "writing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

// BatchState is exposed through the workflow query.
type BatchState struct {
	BatchID       string      `json:"batchId"`
	Status        BatchStatus `json:"status"`
	Processed     int         `json:"processed"`
	Errors        int         `json:"errors"`
	Lines         []string    `json:"lines"`
	Truncated     bool        `json:"truncated,omitempty"`
	FailureReason string      `json:"failureReason,omitempty"`
}

// BatchResult is returned when the batch workflow completes.
type BatchResult struct {
	BatchID   string `json:"batchId"`
	Processed int    `json:"processed"`
	Errors    int    `json:"errors"`
	Lines     int    `json:"lines"`
}

// Batch payload bounds. File batches stream file to file and carry no
// directive or transcript text; inline batches travel in workflow payloads,
// which Temporal caps at 2 MiB by default.
const (
	MaxInlineBytes = 512 << 10
	MaxStateLines  = 1000
)

// Workflow names shared by the API server and the worker
const (
	BatchWorkflowName = "BatchWorkflow"
)

// Queries for workflow state
const (
	QueryGetState = "get_state"
)
