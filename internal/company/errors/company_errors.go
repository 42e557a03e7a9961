package companyerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrSlugTaken = apperror.New(
		apperror.CodeConflict,
		"Company slug is already in use",
		http.StatusConflict,
	)
)
