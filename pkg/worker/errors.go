package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Policy defines error handling behavior for a run.
type Policy uint8

const (
	PolicyStrict     Policy = iota // Fail on first error
	PolicySkip                     // Skip bad matches
	PolicyQuarantine               // Record bad matches for inspection
)

func (p Policy) String() string {
	names := []string{"strict", "skip", "quarantine"}
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// ParsePolicy parses a policy name, defaulting to quarantine.
func ParsePolicy(s string) Policy {
	switch s {
	case "strict":
		return PolicyStrict
	case "skip":
		return PolicySkip
	default:
		return PolicyQuarantine
	}
}

// MatchError represents a failure processing one match.
type MatchError struct {
	MatchID   string    `json:"matchId"`
	Region    string    `json:"region"`
	Stage     string    `json:"stage"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *MatchError) String() string {
	return fmt.Sprintf("match %s (%s) at %s: %s", e.MatchID, e.Region, e.Stage, e.Error)
}

// Quarantine stores rejected matches for later inspection.
type Quarantine interface {
	Add(err MatchError)
	Errors() []MatchError
	Count() int
	Flush() error
	Close() error
}

// Handler applies the run's error policy to per-match failures.
type Handler struct {
	mu sync.Mutex

	policy     Policy
	errors     []MatchError
	quarantine Quarantine
}

// NewHandler creates a new error handler.
func NewHandler(policy Policy) *Handler {
	return &Handler{policy: policy}
}

// SetQuarantine sets the quarantine destination.
func (h *Handler) SetQuarantine(q Quarantine) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.quarantine = q
}

// Handle processes a match failure according to policy. A non-nil
// return aborts the run.
func (h *Handler) Handle(err MatchError) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errors = append(h.errors, err)

	switch h.policy {
	case PolicyStrict:
		return fmt.Errorf("strict mode: %s", err.String())
	case PolicyQuarantine:
		if h.quarantine != nil {
			h.quarantine.Add(err)
		}
	}
	return nil
}

// Errors returns all collected errors.
func (h *Handler) Errors() []MatchError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]MatchError{}, h.errors...)
}

// ErrorCount returns the number of errors.
func (h *Handler) ErrorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.errors)
}

// MemoryQuarantine stores errors in memory.
type MemoryQuarantine struct {
	mu     sync.Mutex
	errors []MatchError
}

// NewMemoryQuarantine creates a memory-based quarantine.
func NewMemoryQuarantine() *MemoryQuarantine {
	return &MemoryQuarantine{}
}

func (q *MemoryQuarantine) Add(err MatchError) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errors = append(q.errors, err)
}

func (q *MemoryQuarantine) Errors() []MatchError {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]MatchError{}, q.errors...)
}

func (q *MemoryQuarantine) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.errors)
}

func (q *MemoryQuarantine) Flush() error { return nil }
func (q *MemoryQuarantine) Close() error { return nil }

// FileQuarantine writes errors to a JSONL file as they arrive.
type FileQuarantine struct {
	mu     sync.Mutex
	file   *os.File
	errors []MatchError
}

// NewFileQuarantine creates a file-based quarantine.
func NewFileQuarantine(path string) (*FileQuarantine, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileQuarantine{file: file}, nil
}

func (q *FileQuarantine) Add(err MatchError) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.errors = append(q.errors, err)

	data, _ := json.Marshal(err)
	q.file.Write(data)
	q.file.WriteString("\n")
}

func (q *FileQuarantine) Errors() []MatchError {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]MatchError{}, q.errors...)
}

func (q *FileQuarantine) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.errors)
}

func (q *FileQuarantine) Flush() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.file.Sync()
}

func (q *FileQuarantine) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.file.Close()
}
