package locationerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Location not found",
		http.StatusNotFound,
	)

	ErrCodeTaken = apperror.New(
		apperror.CodeConflict,
		"Location code is already in use for this company",
		http.StatusConflict,
	)

	ErrHasEmployees = apperror.New(
		apperror.CodeConflict,
		"Cannot delete location with assigned employees",
		http.StatusConflict,
	)

	ErrHasDepartments = apperror.New(
		apperror.CodeConflict,
		"Cannot delete location with assigned departments",
		http.StatusConflict,
	)
)
