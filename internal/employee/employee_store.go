package employee

import (
	"sync"

	employeeerrors "leavedesk/internal/employee/errors"
)

// Store is the single in-memory employee record set. Both the stateful
// workflow and the agent tools read and write this store, so a balance
// deducted on one path is visible on the other.
//
// All mutations happen under the store lock; balances can never go negative.
type Store struct {
	mu        sync.RWMutex
	employees map[string]*Employee
}

func NewStore(seed ...Employee) *Store {
	s := &Store{employees: make(map[string]*Employee)}
	for _, e := range seed {
		e := e
		s.employees[e.ID] = &e
	}
	return s
}

// SeedData returns the default employee records loaded at process start.
func SeedData() []Employee {
	return []Employee{
		{ID: "E101", Name: "Priya K.", Email: "priya.k@example.com", LeaveBalance: 8, TotalLeaves: 20, ManagerID: "M501"},
		{ID: "E102", Name: "Rohan M.", Email: "rohan.m@example.com", LeaveBalance: 3, TotalLeaves: 20, ManagerID: "M501"},
		{ID: "M501", Name: "Vikram Singh", Email: "vikram.singh@example.com", LeaveBalance: 30, TotalLeaves: 30, ManagerID: ""},
	}
}

// Get returns a copy of the record so callers cannot mutate shared state
// outside the lock.
func (s *Store) Get(id string) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return Employee{}, false
	}
	return *e, true
}

// DeductLeave atomically checks sufficiency and deducts. It fails closed:
// an unknown employee or an insufficient balance leaves the record untouched.
func (s *Store) DeductLeave(id string, days int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return 0, employeeerrors.ErrEmployeeNotFound
	}
	if days <= 0 {
		return e.LeaveBalance, employeeerrors.ErrInvalidDays
	}
	if e.LeaveBalance < days {
		return e.LeaveBalance, employeeerrors.ErrInsufficientBalance
	}

	e.LeaveBalance -= days
	return e.LeaveBalance, nil
}
