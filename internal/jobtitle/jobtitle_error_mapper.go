package jobtitle

import (
	"errors"
	"strings"

	jobtitleerrors "go-hrm/internal/jobtitle/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jobtitleerrors.ErrJobTitleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "uq_job_titles_company_code") {
			return jobtitleerrors.ErrCodeTaken
		}
	}

	return err
}
