package employeeerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrNumberTaken = apperror.New(
		apperror.CodeConflict,
		"Employee number is already in use for this company",
		http.StatusConflict,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"Email address is already in use",
		http.StatusConflict,
	)

	ErrInvalidDepartment = apperror.New(
		apperror.CodeUnprocessable,
		"Department does not exist in this company",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidJobTitle = apperror.New(
		apperror.CodeUnprocessable,
		"Job title does not exist in this company",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidLocation = apperror.New(
		apperror.CodeUnprocessable,
		"Location does not exist in this company",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidManager = apperror.New(
		apperror.CodeUnprocessable,
		"Manager must be an active employee of this company",
		http.StatusUnprocessableEntity,
	)

	ErrSelfManager = apperror.New(
		apperror.CodeUnprocessable,
		"An employee cannot be their own manager",
		http.StatusUnprocessableEntity,
	)

	ErrMultiplePrimaryManagers = apperror.New(
		apperror.CodeUnprocessable,
		"Only one manager may be marked primary",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee status",
		http.StatusBadRequest,
	)

	ErrAlreadyTerminated = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already terminated",
		http.StatusConflict,
	)

	ErrNotArchived = apperror.New(
		apperror.CodeInvalidState,
		"Employee is not archived",
		http.StatusConflict,
	)

	ErrContactNotFound = apperror.New(
		apperror.CodeNotFound,
		"Emergency contact not found",
		http.StatusNotFound,
	)
)
