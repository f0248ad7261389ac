package leave

import (
	"sync"
	"time"

	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/google/uuid"
)

// RequestStore tracks leave requests in process memory. The status transition
// runs under the store lock, so exactly one decide wins on a given request
// even when approval links are clicked concurrently.
type RequestStore struct {
	mu       sync.RWMutex
	requests map[string]*LeaveRequest
}

func NewRequestStore() *RequestStore {
	return &RequestStore{requests: make(map[string]*LeaveRequest)}
}

func (s *RequestStore) Create(employeeID, managerID string, days int, reason string) LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &LeaveRequest{
		ID:            uuid.New().String(),
		EmployeeID:    employeeID,
		ManagerID:     managerID,
		Status:        StatusPendingApproval,
		DaysRequested: days,
		Reason:        reason,
		CreatedAt:     time.Now().UTC(),
	}
	s.requests[r.ID] = r
	return *r
}

func (s *RequestStore) Get(id string) (LeaveRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return LeaveRequest{}, false
	}
	return *r, true
}

// Transition moves a request from PENDING_APPROVAL to the given terminal
// status. A missing request and an already-decided one collapse into the
// same not-found error, matching what the approval link reports.
func (s *RequestStore) Transition(id, target string) (LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok || r.Status != StatusPendingApproval {
		return LeaveRequest{}, leaveerrors.ErrRequestNotFound
	}

	now := time.Now().UTC()
	r.Status = target
	r.DecidedAt = &now
	return *r, nil
}
