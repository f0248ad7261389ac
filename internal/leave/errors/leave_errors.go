package leaveerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodePreconditionFailed,
		"insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInternalError,
		"manager not found for this employee",
		http.StatusInternalServerError,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found or has already been processed",
		http.StatusNotFound,
	)
	ErrRequestMissing = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrEmployeeRecordMissing = apperror.New(
		apperror.CodeInternalError,
		"original employee data not found",
		http.StatusInternalServerError,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or deny",
		http.StatusBadRequest,
	)
	ErrInvalidApprovalToken = apperror.New(
		apperror.CodeUnauthorized,
		"approval link is invalid or expired",
		http.StatusUnauthorized,
	)
)
