package leave

import (
	"context"
	"fmt"
	"time"

	"leavedesk/internal/employee"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/mailer"
	"leavedesk/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error)
	Decide(ctx context.Context, requestID, action, token string) (DecideLeaveResponse, error)
	Status(ctx context.Context, requestID string) (LeaveRequestResponse, error)
}

type service struct {
	employees *employee.Store
	requests  *RequestStore
	mailer    mailer.Mailer
	signer    *ApprovalSigner
	baseURL   string
	logger    *zap.Logger
}

func NewService(
	employees *employee.Store,
	requests *RequestStore,
	m mailer.Mailer,
	signer *ApprovalSigner,
	baseURL string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		employees: employees,
		requests:  requests,
		mailer:    m,
		signer:    signer,
		baseURL:   baseURL,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (SubmitLeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("days_requested", req.DaysRequested),
	)

	// Every guard passes before any state is touched.
	emp, ok := s.employees.Get(req.EmployeeID)
	if !ok {
		s.logger.Warn("submit leave unknown employee",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
		)
		return SubmitLeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}
	if emp.LeaveBalance < req.DaysRequested {
		s.logger.Warn("submit leave insufficient balance",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.Int("balance", emp.LeaveBalance),
			zap.Int("days_requested", req.DaysRequested),
		)
		return SubmitLeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}
	manager, ok := s.employees.Get(emp.ManagerID)
	if !ok {
		s.logger.Error("submit leave manager not resolvable",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.String("manager_id", emp.ManagerID),
		)
		return SubmitLeaveResponse{}, leaveerrors.ErrManagerNotFound
	}

	r := s.requests.Create(req.EmployeeID, emp.ManagerID, req.DaysRequested, req.Reason)

	s.notifyManager(ctx, r, emp, manager)

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", r.ID),
		zap.String("employee_id", req.EmployeeID),
	)
	return SubmitLeaveResponse{
		Message:   "Request successfully submitted. Awaiting manager approval.",
		RequestID: r.ID,
		Status:    r.Status,
	}, nil
}

func (s *service) notifyManager(ctx context.Context, r LeaveRequest, emp, manager employee.Employee) {
	token, err := s.signer.Issue(r.ID, manager.ID)
	if err != nil {
		s.logger.Error("approval token issue failed",
			zap.String("leave_request_id", r.ID),
			zap.Error(err),
		)
		return
	}

	approveLink := fmt.Sprintf("%s/handle-approval?request_id=%s&action=%s&token=%s", s.baseURL, r.ID, ActionApprove, token)
	denyLink := fmt.Sprintf("%s/handle-approval?request_id=%s&action=%s&token=%s", s.baseURL, r.ID, ActionDeny, token)

	subject := fmt.Sprintf("Leave Request from %s (ID: %s)", emp.Name, emp.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"%s has requested %d day(s) of leave.\n"+
			"Reason: %s\n\n"+
			"Please review and take action using the links below:\n\n"+
			"Approve: %s\n"+
			"Deny: %s\n\n"+
			"Request ID: %s\n",
		manager.Name, emp.Name, r.DaysRequested, r.Reason, approveLink, denyLink, r.ID,
	)

	outcome := s.mailer.Send(ctx, manager.Email, subject, body)
	if !outcome.Sent() {
		// Notification failure does not fail the submission; the request is
		// already on record and can still be decided.
		s.logger.Warn("manager notification not delivered",
			zap.String("leave_request_id", r.ID),
			zap.String("status", string(outcome.Status)),
			zap.String("reason", outcome.Reason),
		)
	}
}

func (s *service) Decide(ctx context.Context, requestID, action, token string) (DecideLeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_request_id", requestID),
		zap.String("action", action),
	)

	if action != ActionApprove && action != ActionDeny {
		return DecideLeaveResponse{}, leaveerrors.ErrInvalidAction
	}

	managerID, err := s.signer.Verify(token, requestID)
	if err != nil {
		s.logger.Warn("decide leave token rejected",
			zap.String("request_id", rid),
			zap.String("leave_request_id", requestID),
		)
		return DecideLeaveResponse{}, err
	}

	r, ok := s.requests.Get(requestID)
	if !ok {
		return DecideLeaveResponse{}, leaveerrors.ErrRequestNotFound
	}
	if r.ManagerID != managerID {
		return DecideLeaveResponse{}, leaveerrors.ErrInvalidApprovalToken
	}

	emp, ok := s.employees.Get(r.EmployeeID)
	if !ok {
		return DecideLeaveResponse{}, leaveerrors.ErrEmployeeRecordMissing
	}

	target := StatusDenied
	if action == ActionApprove {
		target = StatusApproved
	}

	// The transition is the serialization point: a second decide on the same
	// request fails here with not-found/already-processed.
	r, err = s.requests.Transition(requestID, target)
	if err != nil {
		s.logger.Warn("decide leave transition rejected",
			zap.String("request_id", rid),
			zap.String("leave_request_id", requestID),
			zap.String("target_status", target),
		)
		return DecideLeaveResponse{}, err
	}

	if target == StatusApproved {
		if _, err := s.employees.DeductLeave(r.EmployeeID, r.DaysRequested); err != nil {
			// The approval stands; the balance was validated at submission and
			// the two stores are not transactionally coupled.
			s.logger.Warn("approved request could not deduct balance",
				zap.String("leave_request_id", requestID),
				zap.String("employee_id", r.EmployeeID),
				zap.Int("days_requested", r.DaysRequested),
				zap.Error(err),
			)
		}
	}

	s.notifyEmployee(ctx, r, emp, target)

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", requestID),
		zap.String("status", target),
	)
	return DecideLeaveResponse{
		Message: fmt.Sprintf("Request %s has been %s.", requestID, target),
	}, nil
}

func (s *service) notifyEmployee(ctx context.Context, r LeaveRequest, emp employee.Employee, target string) {
	subject := "Leave Request Approved"
	verdict := "approved"
	if target == StatusDenied {
		subject = "Leave Request Denied"
		verdict = "denied"
	}
	body := fmt.Sprintf("Hi %s,\n\nYour leave request (%s) has been %s.\n", emp.Name, r.Reason, verdict)

	outcome := s.mailer.Send(ctx, emp.Email, subject, body)
	if !outcome.Sent() {
		s.logger.Warn("employee notification not delivered",
			zap.String("leave_request_id", r.ID),
			zap.String("status", string(outcome.Status)),
			zap.String("reason", outcome.Reason),
		)
	}
}

func (s *service) Status(ctx context.Context, requestID string) (LeaveRequestResponse, error) {
	r, ok := s.requests.Get(requestID)
	if !ok {
		return LeaveRequestResponse{}, leaveerrors.ErrRequestMissing
	}
	return mapToResponse(r), nil
}

func mapToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		RequestID:     r.ID,
		EmployeeID:    r.EmployeeID,
		ManagerID:     r.ManagerID,
		Status:        r.Status,
		DaysRequested: r.DaysRequested,
		Reason:        r.Reason,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		resp.DecidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	return resp
}
