// Package uploads runs the guideline upload workflow and tracks its progress.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

// ErrUploadNotFound is returned for an unknown or expired upload id
var ErrUploadNotFound = errors.New("upload not found")

// TransitionError reports a status change the workflow does not allow
type TransitionError struct {
	From types.UploadStatus
	To   types.UploadStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid upload transition %s -> %s", e.From, e.To)
}

// Tracker stores the progress of in-flight uploads keyed by upload id
type Tracker interface {
	Start(ctx context.Context, p types.UploadProgress) error
	Get(ctx context.Context, id string) (*types.UploadProgress, error)
	Update(ctx context.Context, id string, status types.UploadStatus, progress int, errMsg string) (*types.UploadProgress, error)
}

// allowed lists the legal next states. Any non-terminal state may move to error.
var allowed = map[types.UploadStatus][]types.UploadStatus{
	types.UploadUploading:  {types.UploadUploading, types.UploadProcessing},
	types.UploadProcessing: {types.UploadProcessing, types.UploadComplete},
}

// advance applies a status change to p in place
func advance(p *types.UploadProgress, status types.UploadStatus, progress int, errMsg string) error {
	if p.Status.Terminal() {
		return &TransitionError{From: p.Status, To: status}
	}
	ok := status == types.UploadError
	for _, next := range allowed[p.Status] {
		if next == status {
			ok = true
		}
	}
	if !ok {
		return &TransitionError{From: p.Status, To: status}
	}

	switch {
	case progress < 0:
		progress = 0
	case progress > 100:
		progress = 100
	}
	if status == types.UploadComplete {
		progress = 100
	}
	// progress never moves backwards within a state
	if status == p.Status && progress < p.Progress {
		progress = p.Progress
	}

	p.Status = status
	p.Progress = progress
	p.Error = errMsg
	return nil
}

// MemoryTracker keeps progress in process memory
type MemoryTracker struct {
	mu      sync.Mutex
	uploads map[string]types.UploadProgress
}

// NewMemoryTracker creates an empty tracker
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{uploads: make(map[string]types.UploadProgress)}
}

// Start records a new upload in the uploading state
func (m *MemoryTracker) Start(_ context.Context, p types.UploadProgress) error {
	p.Status = types.UploadUploading
	p.Progress = 0
	m.mu.Lock()
	m.uploads[p.ID] = p
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the upload's progress
func (m *MemoryTracker) Get(_ context.Context, id string) (*types.UploadProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.uploads[id]
	if !ok {
		return nil, ErrUploadNotFound
	}
	return &p, nil
}

// Update moves the upload to status
func (m *MemoryTracker) Update(_ context.Context, id string, status types.UploadStatus, progress int, errMsg string) (*types.UploadProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.uploads[id]
	if !ok {
		return nil, ErrUploadNotFound
	}
	if err := advance(&p, status, progress, errMsg); err != nil {
		return nil, err
	}
	m.uploads[id] = p
	return &p, nil
}
