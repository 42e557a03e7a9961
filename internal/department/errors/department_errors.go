package departmenterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrCodeTaken = apperror.New(
		apperror.CodeConflict,
		"Department code is already in use for this company",
		http.StatusConflict,
	)

	ErrInvalidParent = apperror.New(
		apperror.CodeUnprocessable,
		"Parent department does not exist in this company",
		http.StatusUnprocessableEntity,
	)

	ErrSelfParent = apperror.New(
		apperror.CodeUnprocessable,
		"A department cannot be its own parent",
		http.StatusUnprocessableEntity,
	)

	ErrCircularReference = apperror.New(
		apperror.CodeUnprocessable,
		"Move would create a cycle in the department hierarchy",
		http.StatusUnprocessableEntity,
	)

	ErrCycleDetected = apperror.New(
		apperror.CodeUnprocessable,
		"Department hierarchy contains a cycle",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidManager = apperror.New(
		apperror.CodeUnprocessable,
		"Manager must be an employee of this company",
		http.StatusUnprocessableEntity,
	)

	ErrHasEmployees = apperror.New(
		apperror.CodeConflict,
		"Cannot delete department with assigned employees",
		http.StatusConflict,
	)

	ErrHasChildren = apperror.New(
		apperror.CodeConflict,
		"Cannot delete department with child departments",
		http.StatusConflict,
	)
)
