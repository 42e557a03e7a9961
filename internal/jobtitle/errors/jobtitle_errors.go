package jobtitleerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrJobTitleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job title not found",
		http.StatusNotFound,
	)

	ErrCodeTaken = apperror.New(
		apperror.CodeConflict,
		"Job title code is already in use for this company",
		http.StatusConflict,
	)

	ErrInvalidSalaryBand = apperror.New(
		apperror.CodeUnprocessable,
		"Minimum salary cannot exceed maximum salary",
		http.StatusUnprocessableEntity,
	)

	ErrHasEmployees = apperror.New(
		apperror.CodeConflict,
		"Cannot delete job title with assigned employees",
		http.StatusConflict,
	)
)
